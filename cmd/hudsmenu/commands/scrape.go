package commands

import (
	"log/slog"
	"os"

	"hudsmenu-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one refresh cycle and exit. Exits non-zero if the scrape failed.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		svc, db, err := buildService(cfg)
		if err != nil {
			serviceutil.Fatal("failed to initialize menu service", err)
		}
		defer db.Close()

		status := svc.Refresh(cmd.Context())
		if !status.Success {
			slog.Error("scrape failed", "kind", status.Error)
			os.Exit(1)
		}
		slog.Info("scrape succeeded", "refreshed_at", status.LastRefreshed)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
