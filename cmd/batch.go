package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Look up annual revenue for a list of companies",
	Long:  "Reads a JSON array of companies ({url, customerName, country}) and prints one result per input, in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		data, err := os.ReadFile(batchFile)
		if err != nil {
			return eris.Wrapf(err, "read batch file %s", batchFile)
		}

		var companies []model.Company
		if err := json.Unmarshal(data, &companies); err != nil {
			return eris.Wrap(err, "parse batch file")
		}
		zap.L().Info("batch starting", zap.Int("companies", len(companies)))

		p := initPipeline()
		result := p.Batch(ctx, companies)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "path to JSON file with companies")
	batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
