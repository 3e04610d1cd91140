package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/restoas/internal/docserver"
	"github.com/erraggy/restoas/reader"
)

type serveFlags struct {
	address      string
	documentPath string
}

func newServeCommand(a *app) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve [routes.yaml]",
		Short: "Serve the generated Swagger 2.0 document over HTTP",
		Long: `Serve the Swagger 2.0 document of a routes file at <document-path>/openapi.json
and <document-path>/openapi.yaml. The document is regenerated for every
request so X-Forwarded-Host, X-Forwarded-Proto and X-Forwarded-Prefix are
reflected in host, schemes and basePath. Prometheus metrics are served at
/metrics and a liveness probe at /healthz.

The routes file defaults to server.routes_file from the configuration.`,
		Example: `  restoas serve routes.yaml
  restoas serve --address :9090 --document-path /api-docs routes.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, a, flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.address, "address", "", "listen address (default server.address)")
	cmd.Flags().StringVar(&flags.documentPath, "document-path", "", "URL path prefix of the document (default server.document_path)")
	return cmd
}

func runServe(cmd *cobra.Command, a *app, flags *serveFlags, args []string) error {
	sc := a.cfg.Server
	routesFile := sc.RoutesFile
	if len(args) == 1 {
		routesFile = args[0]
	}
	if routesFile == "" {
		return errors.New("serve requires a routes file argument or server.routes_file")
	}
	if flags.address != "" {
		sc.Address = flags.address
	}
	if flags.documentPath != "" {
		sc.DocumentPath = flags.documentPath
	}

	rf, err := reader.LoadRoutesFile(routesFile)
	if err != nil {
		return err
	}
	a.logger.Info("loaded routes", "file", routesFile, "rests", len(rf.Rests))

	srv := docserver.New(rf, a.cfg.Document,
		docserver.WithDocumentPath(sc.DocumentPath),
		docserver.WithLogger(a.logger),
		docserver.WithReadTimeout(sc.ReadTimeoutDuration()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, sc.Address, sc.ShutdownTimeoutDuration())
}
