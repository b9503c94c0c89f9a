package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbonventre/pickaxe/internal/api"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the pickaxe parser, formatter, and
executor over HTTP and WebSocket.

Endpoints:
  GET  /health            — health check
  POST /api/parse          — parse a diff into structured hunks
  POST /api/render         — render a parsed diff with the formatter
  POST /api/plan/execute   — apply a plan document to the staging index
  GET  /api/ws             — WebSocket for interactive plan-building sessions`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6142, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	repoDir, err := gitRepoRoot()
	if err != nil {
		return fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, repoDir, vcs.New(repoDir))
	return srv.ListenAndServe()
}
