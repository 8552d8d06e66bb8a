package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirecast-server/internal/app"
	"github.com/vovakirdan/wirecast-server/internal/config"
	"github.com/vovakirdan/wirecast-server/internal/log"
)

var (
	flagConfig   string
	flagAddr     string
	flagLogLevel string
	flagDBPath   string
	flagShutdown time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "wirecast-server",
	Short: "Signaling server for one-to-many WebRTC broadcasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "", "path to the session journal database")
	rootCmd.Flags().DurationVar(&flagShutdown, "shutdown-timeout", 0, "graceful shutdown timeout")
}

func run(ctx context.Context) error {
	logger := log.New(flagLogLevel)

	cfg, cfgPath, err := config.Load(logger, flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UpdateFrom(config.Config{
		Addr:            flagAddr,
		LogLevel:        flagLogLevel,
		DatabasePath:    flagDBPath,
		ShutdownTimeout: flagShutdown,
	})

	logger = log.New(cfg.LogLevel)
	logger.Info().Str("config", cfgPath).Str("addr", cfg.Addr).Msg("starting wirecast server")

	application, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
