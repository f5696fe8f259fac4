// Command stronghold manages a turn-based stronghold simulation game.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "stronghold",
	Short: "Stronghold management simulation",
	Long: `Stronghold is a turn-based settlement simulation. You manage buildings,
inhabitants, resources and missions, and advance the game one week at a time.

Examples:
  stronghold new --name Ravenkeep --location "Northern Marches"
  stronghold build farm "Old Farm"
  stronghold assign "Old Farm" Bram Elswyth
  stronghold advance --weeks 4
  stronghold status`,
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("STRONGHOLD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if viper.GetBool("verbose") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("db", "stronghold.db", "path to the save database")
	rootCmd.PersistentFlags().String("catalog", "", "building catalog file (yaml); builtin defaults when empty")
	rootCmd.PersistentFlags().Int64("seed", 0, "rng seed (0 derives one from the game name)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(advanceCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(journalCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(crewCmd())
	rootCmd.AddCommand(repairCmd())
	rootCmd.AddCommand(upgradeCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(recruitCmd())
	rootCmd.AddCommand(dismissCmd())
	rootCmd.AddCommand(npcsCmd())
	rootCmd.AddCommand(missionsCmd())
	rootCmd.AddCommand(serveCmd())
}
