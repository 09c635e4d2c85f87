package commands

import (
	"os"

	"hudsmenu-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent scrape attempts, newest first.",
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

		attempts, err := svc.History(cmd.Context(), *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to read scrape history", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "Success", "Error", "Dishes"})
		for _, attempt := range attempts {
			t.AppendRow(table.Row{
				attempt.Time.Format("2006-01-02 15:04:05"),
				attempt.Success,
				attempt.Error,
				attempt.DishCount,
			})
		}
		t.Render()
	},
}

func init() {
	historyLimit = historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of attempts to show.")
	rootCmd.AddCommand(historyCmd)
}
