package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server with the page, API, and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ServeHTTP == nil {
				return fmt.Errorf("http server is not configured")
			}
			return app.ServeHTTP(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default from config)")

	return cmd
}
