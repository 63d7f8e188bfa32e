package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astroidz/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would use, after the search path and
the difficulty preset are applied. Redirect it to a file to start a custom
config:

  astroidz config > ~/.astroidz/configs/asteroids.yaml

Examples:
  astroidz config
  astroidz config --difficulty hard
  astroidz config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the commented built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	os.Stdout.Write(data)
}
