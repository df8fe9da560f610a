package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/pkg/executor"
)

// Dependencies carries the wiring shared by every subcommand.
type Dependencies struct {
	Cfg     *config.Config
	Log     logger.Logger
	Exec    executor.Executor
	APIKeys []string
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "slidecast",
		Short:         "Convert slide decks into narrated videos",
		Long:          "slidecast renders each slide of a pptx deck to an image, synthesizes speech from the slide's speaker notes, and concatenates the segments into one MP4.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			deps.Cfg = cfg
			deps.Log = logger.New(cfg.Logging.Level)
			deps.Exec = executor.New()
			deps.APIKeys = splitKeys(os.Getenv("GEMINI_API_KEYS"))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to config file")

	rootCmd.AddCommand(NewConvertCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewHistoryCmd(deps))

	return rootCmd
}

// loadConfig reads the config file when present and falls back to built-in
// defaults otherwise, so the tool works without any setup.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
