/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/db"
	"github.com/dialpro/apiserver/internal/provider"
	"github.com/dialpro/apiserver/internal/store"
)

// seedCmd loads the demo dataset into Postgres so the server can run
// with DATA_PROVIDER=postgres against realistic data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo call log and follow-ups into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.LoadConfig()

		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()

		mock := provider.NewMock()
		callLogRepo := store.NewCallLogRepository(conn, nil)
		followUpRepo := store.NewFollowUpRepository(conn)

		entries, err := mock.CallLog(ctx)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := callLogRepo.Insert(ctx, entry); err != nil {
				return fmt.Errorf("insert call %s: %w", entry.ID, err)
			}
		}

		followUps, err := mock.FollowUps(ctx)
		if err != nil {
			return err
		}
		for _, followUp := range followUps {
			if err := followUpRepo.Insert(ctx, followUp); err != nil {
				return fmt.Errorf("insert follow-up %s: %w", followUp.ID, err)
			}
		}

		fmt.Printf("seeded %d call log entries and %d follow-ups\n", len(entries), len(followUps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
