package commands

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/restoas"
	"github.com/erraggy/restoas/config"
	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
)

// app carries the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand returns the restoas command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "restoas",
		Short: "REST routes to OpenAPI documents and OpenAPI operations to HTTP endpoints",
		Long: `restoas works in both directions between REST route definitions and OpenAPI.

- read:    generate a Swagger 2.0 document from a routes YAML file
- resolve: turn OpenAPI operations into the HTTP endpoints that invoke them
- emit:    list the operations of an OpenAPI document as route definition calls
- serve:   serve the generated document over HTTP, honouring X-Forwarded-* headers
- mcp:     expose read, resolve and emit as MCP tools over stdio

Configuration is read from restoas.toml (or --config), the restoas.<env>.toml
overlay selected by RESTOAS_ENV, and RESTOAS_* environment variables.`,
		Version:       restoas.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SuggestionsMinimumDistance = 2
	root.SetVersionTemplate(versionTemplate())

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (default restoas.toml when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn or error")

	root.AddCommand(
		newReadCommand(a),
		newResolveCommand(a),
		newEmitCommand(a),
		newServeCommand(a),
		newMCPCommand(a),
		newVersionCommand(),
	)
	return root
}

// load reads the configuration and builds the logger. Logs go to the
// command's error stream so stdout carries only results.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		switch strings.ToLower(a.logLevel) {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = a.logLevel
		default:
			return &oaserrors.ConfigError{Option: "log-level", Value: a.logLevel, Message: "must be debug, info, warn or error"}
		}
	}
	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "env", config.Env(), "file", a.configPath)
	return nil
}

// parserLogger adapts the process logger for library options.
func (a *app) parserLogger() parser.Logger {
	return parser.NewSlogAdapter(a.logger)
}

func versionTemplate() string {
	var sb strings.Builder
	sb.WriteString(`restoas {{printf "%s" .Version}}`)
	if c := restoas.Commit(); c != "unknown" && c != "" {
		sb.WriteString("\nBuild: " + c)
	}
	if t := restoas.BuildTime(); t != "unknown" && t != "" {
		sb.WriteString("\nBuilt: " + t)
	}
	sb.WriteString("\n")
	return sb.String()
}
