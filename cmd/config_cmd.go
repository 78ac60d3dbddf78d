// Package cmd implements the ccdash CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/ccdash/internal/cli"
	"github.com/theirongolddev/ccdash/internal/config"
	"github.com/theirongolddev/ccdash/internal/pricing"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderStat("Config file", config.ConfigPath()))
	if config.Exists() {
		fmt.Println(cli.RenderStat("Status", "loaded"))
	} else {
		fmt.Println(cli.RenderStat("Status", "using defaults (no config file)"))
	}
	fmt.Println()

	fmt.Println(cli.RenderStat("Data directory", config.DataDir(cfg, flagDataDir)))
	fmt.Println(cli.RenderStat("Listen address", cfg.Listen))
	fmt.Println()

	fmt.Println("  [Pricing]  USD per million tokens")
	r := cfg.Rates()
	fmt.Println(cli.RenderCost("Input", pricing.FormatCost(r.InputPerMTok, 2)))
	fmt.Println(cli.RenderCost("Cache write", pricing.FormatCost(r.CacheWritePerMTok, 2)))
	fmt.Println(cli.RenderCost("Cache read (5m)", pricing.FormatCost(r.CacheRead5mPerMTok, 2)))
	fmt.Println(cli.RenderCost("Cache read (1h)", pricing.FormatCost(r.CacheRead1hPerMTok, 2)))
	fmt.Println(cli.RenderCost("Output", pricing.FormatCost(r.OutputPerMTok, 2)))
	if !config.Exists() {
		fmt.Println()
		fmt.Println("  Run `ccdash config init` to write the defaults to disk.")
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}
