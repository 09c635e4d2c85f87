package commands

import (
	"hudsmenu-backend/lib/serviceutil"
	"hudsmenu-backend/services/menu"

	"github.com/spf13/cobra"
)

var notifyRefreshFirst *bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Email today's cached menu to the configured recipients and exit.",
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

		ctx := cmd.Context()
		if *notifyRefreshFirst {
			svc.Refresh(ctx)
		}

		day, err := svc.Today(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load today's menu", err)
		}

		notifier := menu.NewNotifier(cfg.Notifier)
		err = notifier.NotifyToday(ctx, day)
		if err != nil {
			serviceutil.Fatal("failed to send daily email", err)
		}
	},
}

func init() {
	notifyRefreshFirst = notifyCmd.Flags().Bool(
		"refresh", false,
		"Refresh the cache before sending, matching what the daily cron does.",
	)
	rootCmd.AddCommand(notifyCmd)
}
