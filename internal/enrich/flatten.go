// Copyright Sigma Labs Ltd., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/sigmalabs/pharmazer/internal/institutes"
	"github.com/sigmalabs/pharmazer/internal/pubmed"
)

// Row is one flattened output record: article fields, author fields, and
// the enriched affiliation fields, in the fixed 15-column schema.
type Row struct {
	PMID       string `csv:"Article PMID"`
	Title      string `csv:"Article title"`
	Keywords   string `csv:"Article keywords"`
	MeshIDs    string `csv:"Article MESH Identifiers"`
	Year       string `csv:"Article year"`
	FirstName  string `csv:"Author first name"`
	LastName   string `csv:"Author last name"`
	Initials   string `csv:"Author initials"`
	FullName   string `csv:"Author full name"`
	Email      string `csv:"Author email"`
	SourceName string `csv:"Affiliation name (from PubMed dataset)"`
	GridName   string `csv:"Affiliation name (from GRID dataset)"`
	Zipcode    string `csv:"Affiliation zipcode"`
	Country    string `csv:"Affiliation country"`
	GridID     string `csv:"Affiliation GRID identifier"`
}

// Summary holds counts from one flattening run.
type Summary struct {
	Articles           int `yaml:"articles"`
	Rows               int `yaml:"rows"`
	CollectivesSkipped int `yaml:"collectives_skipped"`
	EnrichFailures     int `yaml:"enrich_failures"`
}

// Flattener walks the citation tree and emits one enriched row per
// affiliation of every non-collective author.
type Flattener struct {
	articles []pubmed.Article
	enricher *Enricher
	progress io.Writer
	summary  Summary
}

// NewFlattener builds a flattener over parsed articles. Progress lines are
// written to w.
func NewFlattener(articles []pubmed.Article, enricher *Enricher, w io.Writer) *Flattener {
	return &Flattener{articles: articles, enricher: enricher, progress: w}
}

// Rows returns the output rows as a lazy single-pass sequence in document
// order.
//
// Collective authors are skipped entirely. A tagging failure on one
// affiliation is best-effort: the row is still emitted with whatever fields
// resolved and the failure is counted. Reference-integrity errors terminate
// the sequence, since they mean the reference dataset itself is invalid.
func (f *Flattener) Rows(ctx context.Context) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, article := range f.articles {
			if err := ctx.Err(); err != nil {
				yield(Row{}, err)
				return
			}
			f.summary.Articles++

			for _, author := range article.Authors {
				if author.IsCollective() {
					f.summary.CollectivesSkipped++
					continue
				}

				for _, affiliation := range author.Affiliations {
					fields, err := f.enricher.Enrich(ctx, affiliation)
					if err != nil {
						if errors.Is(err, institutes.ErrNotInReference) ||
							errors.Is(err, institutes.ErrDuplicateReference) {
							yield(Row{}, fmt.Errorf("article %s: %w", article.PMID, err))
							return
						}
						fmt.Fprintf(f.progress, "failed  %s (%s): %v\n", article.PMID, author.FullName(), err)
						f.summary.EnrichFailures++
					}

					row := Row{
						PMID:       article.PMID,
						Title:      article.Title,
						Keywords:   article.KeywordsJoined(),
						MeshIDs:    article.MeshIDs(),
						Year:       article.Year,
						FirstName:  author.ForeName,
						LastName:   author.LastName,
						Initials:   author.Initials,
						FullName:   author.FullName(),
						Email:      fields.Email,
						SourceName: fields.SourceName,
						GridName:   fields.GridName,
						Zipcode:    fields.Zipcode,
						Country:    fields.Country,
						GridID:     fields.GridID,
					}

					f.summary.Rows++
					if !yield(row, nil) {
						return
					}
				}
			}
		}
	}
}

// Summary returns the run counts. Valid once the Rows sequence has been
// consumed.
func (f *Flattener) Summary() Summary {
	return f.summary
}
