package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmalabs/pharmazer/internal/enrich"
	"github.com/sigmalabs/pharmazer/internal/export"
	"github.com/sigmalabs/pharmazer/internal/institutes"
	"github.com/sigmalabs/pharmazer/internal/ner"
	"github.com/sigmalabs/pharmazer/internal/pubmed"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

const defaultTimeout = 30 * time.Second

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Flatten and enrich a local citation dump into a CSV",
	Long: `Process reads a PubMed citation XML dump and the institution reference
CSV from disk, enriches every affiliation string, and writes the flat
15-column output table. No network storage is touched.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("xml", "", "path of the citation XML dump (required)")
	processCmd.Flags().String("institutes", "institutes.csv", "path of the institution reference CSV")
	processCmd.Flags().String("out", "", "output CSV path (default: derived from the XML filename)")
	processCmd.Flags().Bool("summary", false, "write a <out>.summary.yaml with run counts")
	processCmd.MarkFlagRequired("xml")

	rootCmd.AddCommand(processCmd)
}

// taggerConfig assembles the tagger settings from config keys.
func taggerConfig() types.TaggerConfig {
	timeout := viper.GetDuration("tagger.timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return types.TaggerConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "pharmazer/" + version,
		},
		Backend:    types.TaggerBackend(viper.GetString("tagger.backend")),
		ServiceURL: viper.GetString("tagger.service_url"),
		Image:      viper.GetString("tagger.image"),
		MaxRetries: viper.GetInt("tagger.max_retries"),
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	xmlPath, _ := cmd.Flags().GetString("xml")
	institutesPath, _ := cmd.Flags().GetString("institutes")
	outPath, _ := cmd.Flags().GetString("out")
	writeSummary, _ := cmd.Flags().GetBool("summary")

	if outPath == "" {
		outPath = export.OutputName(xmlPath, time.Now())
	}

	_, err := processDump(context.Background(), xmlPath, institutesPath, outPath, writeSummary)
	return err
}

// processDump runs the core engine: parse, enrich, flatten, write. Shared
// by the process and run subcommands.
func processDump(ctx context.Context, xmlPath, institutesPath, outPath string, writeSummary bool) (enrich.Summary, error) {
	articles, err := pubmed.ParseFile(xmlPath)
	if err != nil {
		return enrich.Summary{}, err
	}

	store, err := institutes.NewStore(institutesPath)
	if err != nil {
		return enrich.Summary{}, err
	}
	defer store.Close()

	tagger, err := ner.New(taggerConfig())
	if err != nil {
		return enrich.Summary{}, err
	}

	matchCfg := types.MatchConfig{MinScore: viper.GetFloat64("match.min_score")}
	enricher := enrich.NewEnricher(tagger, store, matchCfg)
	flattener := enrich.NewFlattener(articles, enricher, os.Stderr)

	rows, err := export.WriteCSV(outPath, flattener.Rows(ctx))
	if err != nil {
		return enrich.Summary{}, err
	}

	summary := flattener.Summary()
	fmt.Fprintf(os.Stderr, "wrote %d row(s) from %d article(s) to %s\n", rows, summary.Articles, outPath)
	if summary.EnrichFailures > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d affiliation(s) failed enrichment\n", summary.EnrichFailures)
	}

	if writeSummary {
		if err := export.WriteSummary(outPath+".summary.yaml", summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
