package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/makeup-studio/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default services if they are missing",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	n, err := dbpkg.SeedServices(cmd.Context(), db)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d service(s)\n", n)
	return nil
}
