package commands

import (
	"log/slog"

	"hudsmenu-backend/lib/chrono"
	"hudsmenu-backend/lib/serviceutil"
	"hudsmenu-backend/lib/telemetry"
	"hudsmenu-backend/services/menu"
	"hudsmenu-backend/services/menu/server"

	"github.com/spf13/cobra"
)

var serveScrapeOnStart *bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the menu dashboard and JSON API, refreshing on a daily cron.",
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

		notifier := menu.NewNotifier(cfg.Notifier)

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		dailyJob := func() {
			status := svc.Refresh(ctx)
			if !status.Success {
				slog.WarnContext(ctx, "daily refresh failed, emailing cached menu",
					"kind", status.Error)
			}
			day, err := svc.Today(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "failed to load today's menu for email", "err", err)
				return
			}
			err = notifier.NotifyToday(ctx, day)
			if err != nil {
				slog.ErrorContext(ctx, "failed to send daily email", "err", err)
			}
		}

		cron := chrono.NewStandardCron()
		err = cron.Cron(cfg.DailyCron, dailyJob)
		if err != nil {
			serviceutil.Fatal("failed to schedule daily refresh", err)
		}

		if *serveScrapeOnStart {
			go dailyJob()
		}

		handler := server.NewRouter(server.NewHandler(svc))
		serviceutil.StartHttpServer(cfg.Http.Port, handler)
	},
}

func init() {
	serveScrapeOnStart = serveCmd.Flags().Bool(
		"scrape", false,
		"Run the daily refresh+notify job once on startup instead of waiting for the cron.",
	)
	rootCmd.AddCommand(serveCmd)
}
