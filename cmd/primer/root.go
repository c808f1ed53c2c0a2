package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/config"
	"github.com/jackzampolin/primer/internal/home"
	"github.com/jackzampolin/primer/version"
)

var (
	cfgFile      string
	envFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "Few-shot prompt priming for text-completion models",
	Long: `primer wraps user input in a set of input/output examples and sends the
result to a hosted text-completion model, so the model continues the pattern.

It serves:
  - /translate  - complete a prompt using the primed examples
  - /examples   - add, edit and remove priming examples
  - /params     - UI labels for the bundled front end`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.primer/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env-file", "", "dotenv file loaded before config (default: ./.env, then ~/.primer/.env)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "primer home directory (default: ~/.primer)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the home directory and env file, then loads config.
func loadConfig() (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}

	env := envFile
	if env == "" {
		if _, err := os.Stat(config.DefaultEnvFile); err != nil && h.EnvExists() {
			env = h.EnvPath()
		}
	}

	cm, err := config.NewManager(cfgFile, env, h.Path())
	if err != nil {
		return nil, nil, err
	}
	return h, cm, nil
}
