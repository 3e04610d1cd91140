package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erraggy/restoas/internal/conformance"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/reader"
)

type readFlags struct {
	route    string
	format   string
	check    bool
	output   string
	title    string
	version  string
	host     string
	basePath string
	schemes  []string
}

func newReadCommand(a *app) *cobra.Command {
	flags := &readFlags{}
	cmd := &cobra.Command{
		Use:   "read <routes.yaml|->",
		Short: "Generate a Swagger 2.0 document from a routes file",
		Long: `Generate a Swagger 2.0 document from the REST route definitions in a routes
YAML file ("-" reads stdin). Document fields come from the [document]
configuration section and can be overridden with flags.`,
		Example: `  restoas read routes.yaml
  restoas read --route /pets --format yaml routes.yaml
  restoas read --check --title "Pet Store" --api-version 1.0 -o openapi.json routes.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, a, flags, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.route, "route", "", "only document the rest whose path equals this value")
	f.StringVarP(&flags.format, "format", "f", FormatJSON, "output format: json or yaml")
	f.BoolVar(&flags.check, "check", false, "validate the document against the Swagger 2.0 schema")
	f.StringVarP(&flags.output, "output", "o", "", "write the document to this file instead of stdout")
	f.StringVar(&flags.title, "title", "", "document title")
	f.StringVar(&flags.version, "api-version", "", "document version")
	f.StringVar(&flags.host, "host", "", "host the API is served on")
	f.StringVar(&flags.basePath, "base-path", "", "base path of the API")
	f.StringSliceVar(&flags.schemes, "scheme", nil, "transfer protocol of the API (repeatable)")
	return cmd
}

func (f *readFlags) apply(c reader.Config) reader.Config {
	if f.title != "" {
		c.Title = f.title
	}
	if f.version != "" {
		c.Version = f.version
	}
	if f.host != "" {
		c.Host = f.host
	}
	if f.basePath != "" {
		c.BasePath = f.basePath
	}
	if len(f.schemes) > 0 {
		c.Schemes = f.schemes
	}
	return c
}

func runRead(cmd *cobra.Command, a *app, flags *readFlags, routesPath string) error {
	if err := ValidateOutputFormat(flags.format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	if flags.output != "" {
		if err := ValidateOutputPath(cmd.ErrOrStderr(), flags.output, []string{routesPath}); err != nil {
			return err
		}
	}

	data, err := ReadInput(cmd.InOrStdin(), routesPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", FormatSpecPath(routesPath), err)
	}
	rf, err := reader.LoadRoutes(data)
	if err != nil {
		return err
	}

	doc, err := reader.Read(rf.Rests, flags.route, flags.apply(a.cfg.Document),
		reader.WithClassResolver(rf.ClassResolver()),
		reader.WithLogger(a.parserLogger()),
	)
	if err != nil {
		return err
	}
	a.logger.Debug("document generated",
		"routes", FormatSpecPath(routesPath),
		"paths", doc.Paths.Len(),
		"definitions", doc.Definitions.Len())

	if flags.check {
		if err := conformance.CheckDocument(cmd.Context(), doc); err != nil {
			return err
		}
		Writef(cmd.ErrOrStderr(), "Document conforms to Swagger 2.0\n")
	}

	out, err := parser.Marshal(doc, DocumentFormat(flags.format))
	if err != nil {
		return err
	}
	if flags.output != "" {
		return os.WriteFile(flags.output, out, 0o600)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
