/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/mq"
	"github.com/dialpro/apiserver/internal/services"
)

// workerCmd consumes intent events published by the API server.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume intent events from the broker",
	Long: `Consumes recording and note intent events from the configured
broker channel. Requires MQ_BACKEND to be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if cfg.MQ.Backend == "" {
			return errors.New("MQ_BACKEND must be set for the worker")
		}

		broker, err := mq.Connect(cmd.Context(), cfg.MQ)
		if err != nil {
			return err
		}
		defer broker.Close()

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Info("worker started", "backend", cfg.MQ.Backend, "channel", cfg.MQ.Channel)

		consumer := services.NewIntentConsumer(broker, cfg.MQ.Channel, logger)
		return consumer.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
