// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-profile-analyzer/internal/config"
	"github.com/naka-gawa/github-profile-analyzer/internal/gateway"
	"github.com/naka-gawa/github-profile-analyzer/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-profile-analyzer",
	Short: "Analyze a GitHub profile and its recent commit activity.",
	Long: `github-profile-analyzer looks up a GitHub account, lists its public repositories
and charts the daily commit activity of the most recently updated ones.
Run "serve" for the browser dashboard or "lookup" for a one-shot JSON report.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default .github-profile-analyzer.yaml)")
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// loadConfig reads the configuration of cmd. Flags that were set explicitly win over the
// config file and the environment.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := config.New(cfgFile)

	bindings["logging.verbose"] = "verbose"
	if err := bindFlags(v, cmd.Flags(), bindings); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// newLogger discards all logs unless verbose is set, in which case it logs to standard error.
func newLogger(verbose bool) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newAnalyzer injects the dependencies of the lookup pipeline.
func newAnalyzer(cfg *config.Config, logger *log.Logger) (*usecase.Analyzer, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub.Token, cfg.GitHub.BaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	aggregator := usecase.NewAggregator(githubGateway, logger, usecase.WithConcurrency(cfg.GitHub.ActivityConcurrency))
	return usecase.NewAnalyzer(githubGateway, aggregator, logger, cfg.GitHub.TopRepositories), nil
}
