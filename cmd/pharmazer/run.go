package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigmalabs/pharmazer/internal/export"
	"github.com/sigmalabs/pharmazer/internal/notify"
	"github.com/sigmalabs/pharmazer/internal/storage"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline against the configured S3 buckets",
	Long: `Run executes the complete pipeline: announce the start, download the
citation dump from the source bucket, enrich and flatten it, upload the
output table to the target bucket, and announce completion.

Bucket locations come from pharmazer.yaml or PHARMAZER_* environment
variables; AWS credentials come from the .secrets/ directory.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("institutes", "institutes.csv", "path of the institution reference CSV")
	runCmd.Flags().String("workdir", ".", "directory for downloaded and generated files")

	rootCmd.AddCommand(runCmd)
}

func storageConfig() types.StorageConfig {
	return types.StorageConfig{
		Region:       viper.GetString("storage.region"),
		SourceBucket: viper.GetString("storage.source_bucket"),
		SourceKey:    viper.GetString("storage.source_key"),
		TargetBucket: viper.GetString("storage.target_bucket"),
		TargetFolder: viper.GetString("storage.target_folder"),
	}
}

func notifyConfig() types.NotifyConfig {
	return types.NotifyConfig{
		Region:    viper.GetString("notify.region"),
		Sender:    viper.GetString("notify.sender"),
		Recipient: viper.GetString("notify.recipient"),
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	institutesPath, _ := cmd.Flags().GetString("institutes")
	workdir, _ := cmd.Flags().GetString("workdir")

	storageCfg := storageConfig()
	if storageCfg.SourceBucket == "" || storageCfg.SourceKey == "" {
		return fmt.Errorf("source bucket and key must be configured (storage.source_bucket, storage.source_key)")
	}
	if storageCfg.TargetBucket == "" {
		return fmt.Errorf("target bucket must be configured (storage.target_bucket)")
	}

	accessKeyID, secretAccessKey, err := loadedSecrets.AWSCredentials()
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := storage.New(ctx, storageCfg.Region, accessKeyID, secretAccessKey)
	if err != nil {
		return err
	}

	notifier, err := notify.New(ctx, notifyConfig(), accessKeyID, secretAccessKey)
	if err != nil {
		return err
	}

	sourceFilename := path.Base(storageCfg.SourceKey)
	xmlPath := filepath.Join(workdir, sourceFilename)
	outputFilename := export.OutputName(sourceFilename, time.Now())
	outPath := filepath.Join(workdir, outputFilename)

	if err := notifier.Started(ctx, sourceFilename); err != nil {
		return err
	}

	log.Info().
		Str("bucket", storageCfg.SourceBucket).
		Str("key", storageCfg.SourceKey).
		Msg("downloading citation dump")
	if err := client.Download(ctx, storageCfg.SourceBucket, storageCfg.SourceKey, xmlPath); err != nil {
		return err
	}

	log.Info().Str("xml", xmlPath).Msg("enriching citation dump")
	summary, err := processDump(ctx, xmlPath, institutesPath, outPath, true)
	if err != nil {
		return err
	}
	log.Info().
		Int("articles", summary.Articles).
		Int("rows", summary.Rows).
		Int("failures", summary.EnrichFailures).
		Msg("enrichment complete")

	targetKey := storageCfg.TargetFolder + outputFilename
	log.Info().
		Str("bucket", storageCfg.TargetBucket).
		Str("key", targetKey).
		Msg("uploading output table")
	if err := client.Upload(ctx, outPath, storageCfg.TargetBucket, targetKey); err != nil {
		return err
	}

	if err := notifier.Finished(ctx, outputFilename); err != nil {
		return err
	}

	log.Info().Msg("pipeline finished")
	return nil
}
