package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-profile-analyzer/internal/usecase"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <username>",
	Short: "Looks up a GitHub user and outputs the profile report as JSON",
	Long: `Fetches the profile and public repositories of a GitHub user, aggregates the daily
commit activity of the most recently updated repositories and outputs the result in JSON format.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd, map[string]string{"github.top_repositories": "top"})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sortBy, _ := cmd.Flags().GetString("sort")
		if sortBy != "" && !usecase.ValidSortKey(sortBy) {
			fmt.Fprintf(os.Stderr, "Invalid --sort value %q. Use updated, stars or name.\n", sortBy)
			os.Exit(1)
		}
		filter, _ := cmd.Flags().GetString("filter")

		logger := newLogger(cfg.Logging.Verbose)
		analyzer, err := newAnalyzer(cfg, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		report, err := analyzer.Lookup(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to look up %s: %v\n", args[0], err)
			os.Exit(1)
		}
		if filter != "" || sortBy != "" {
			report.Repositories = usecase.FilterRepositories(report.Repositories, filter, sortBy)
		}

		// Marshal the report into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal report to JSON: %v\n", err)
			os.Exit(1)
		}

		// Print the final JSON to standard output.
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().IntP("top", "n", usecase.DefaultTopRepositories, "Number of recently updated repositories to chart")
	lookupCmd.Flags().StringP("sort", "s", "", "Sort repositories by updated, stars or name")
	lookupCmd.Flags().StringP("filter", "f", "", "Only list repositories whose name or description contains this text")
}
