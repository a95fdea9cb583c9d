// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package pubmed reads citation dumps in the PubMed XML schema into a
// navigable article tree.
package pubmed

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Article is one citation: article-level fields plus the author list.
// Immutable once parsed.
type Article struct {
	PMID            string           `xml:"MedlineCitation>PMID"`
	Title           string           `xml:"MedlineCitation>Article>ArticleTitle"`
	Keywords        []string         `xml:"MedlineCitation>KeywordList>Keyword"`
	MeshDescriptors []MeshDescriptor `xml:"MedlineCitation>MeshHeadingList>MeshHeading>DescriptorName"`
	Year            string           `xml:"MedlineCitation>Article>ArticleDate>Year"`
	Authors         []Author         `xml:"MedlineCitation>Article>AuthorList>Author"`
}

// MeshDescriptor is one MESH heading descriptor with its identifier.
type MeshDescriptor struct {
	UI   string `xml:"UI,attr"`
	Name string `xml:",chardata"`
}

// Author is one author entry, individual or collective, with the raw
// affiliation strings attached to it.
type Author struct {
	ForeName       string   `xml:"ForeName"`
	LastName       string   `xml:"LastName"`
	Initials       string   `xml:"Initials"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

// KeywordsJoined returns the article keywords as one comma-delimited
// string, or "" when the article has none.
func (a Article) KeywordsJoined() string {
	return strings.Join(a.Keywords, ", ")
}

// MeshIDs returns the MESH descriptor identifiers as one comma-delimited
// string, or "" when the article has none.
func (a Article) MeshIDs() string {
	ids := make([]string, len(a.MeshDescriptors))
	for i, d := range a.MeshDescriptors {
		ids[i] = d.UI
	}
	return strings.Join(ids, ", ")
}

// IsCollective reports whether the entry is a collective or group author.
// Collectives carry no individual name and produce no output rows.
func (a Author) IsCollective() bool {
	return a.CollectiveName != ""
}

// FullName returns "first last".
func (a Author) FullName() string {
	return a.ForeName + " " + a.LastName
}

// Parse reads a citation dump and returns its articles in document order.
// PubmedArticle elements are collected wherever they sit under the root, so
// both PubmedArticleSet dumps and bare fragments parse. Malformed XML is a
// fatal error.
func Parse(r io.Reader) ([]Article, error) {
	dec := xml.NewDecoder(r)

	var articles []Article
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing citation XML: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "PubmedArticle" {
			continue
		}

		var a Article
		if err := dec.DecodeElement(&a, &se); err != nil {
			return nil, fmt.Errorf("parsing citation XML: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// ParseFile reads the citation dump at path.
func ParseFile(path string) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening citation XML %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}
