package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/makeup-studio/internal/config"
	"github.com/BruksfildServices01/makeup-studio/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "makeup-studio",
	Short: "Makeup studio booking API",
	Long:  "Booking backend for a makeup studio: service catalog, appointments and admin workflow.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig is called by every command that needs configuration.
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Env)
	return nil
}
