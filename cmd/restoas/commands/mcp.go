package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/restoas/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin and stdout exposing the
read_routes, resolve_endpoint and emit_operations tools. Logs go to stderr.

Tool limits are tuned with RESTOAS_MCP_* environment variables, for example
RESTOAS_MCP_MAX_INLINE_SIZE and RESTOAS_MCP_ALLOW_PRIVATE_IPS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.cfg.NewResolver(a.parserLogger())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcpserver.Run(ctx, mcpserver.Options{
				Resolver: r,
				Document: a.cfg.Document,
				Logger:   a.logger,
			})
		},
	}
}
