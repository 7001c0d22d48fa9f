package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/model"
)

var (
	scrapeURL     string
	scrapeName    string
	scrapeCountry string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Look up annual revenue for a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if scrapeURL == "" {
			return eris.New("--url is required")
		}

		p := initPipeline()
		result := p.Run(ctx, model.Company{
			URL:     scrapeURL,
			Name:    scrapeName,
			Country: scrapeCountry,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "", "company website URL")
	scrapeCmd.Flags().StringVar(&scrapeName, "name", "", "company name, enables search fallback")
	scrapeCmd.Flags().StringVar(&scrapeCountry, "country", "", "company country, enables localized queries")
	rootCmd.AddCommand(scrapeCmd)
}
