package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-profile-analyzer/internal/session"
	"github.com/naka-gawa/github-profile-analyzer/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the profile dashboard and its JSON API",
	Long: `Starts an HTTP server hosting the dashboard: search a GitHub user, browse the
repository list and see the daily commit activity chart. The same data is available as JSON
under /api.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"server.addr": "addr"})
		if err != nil {
			return err
		}

		logger := newLogger(cfg.Logging.Verbose)
		analyzer, err := newAnalyzer(cfg, logger)
		if err != nil {
			return err
		}
		srv, err := web.New(web.Config{
			Addr:           cfg.Server.Addr,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}, analyzer, session.New(cfg.Server.DefaultTheme), logger)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(os.Stderr, "Dashboard listening on %s\n", cfg.Server.Addr)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
