package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/walker"
)

type emitFlags struct {
	filter string
	format string
}

// emittedCall is the structured form of one walker.Call.
type emittedCall struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Args   []any  `json:"args,omitempty" yaml:"args,omitempty"`
}

func newEmitCommand(a *app) *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:   "emit <spec-uri|->",
		Short: "Describe the operations of an OpenAPI document as route definitions",
		Long: `Describe every operation of an OpenAPI 2.0 or 3.x document as a route
definition call sequence. Text output renders one rest() block per operation;
json and yaml output list the raw calls.`,
		Example: `  restoas emit petstore.yaml
  restoas emit --filter 'get*,*Pet' https://petstore.swagger.io/v2/swagger.json
  cat petstore.json | restoas emit --format json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, a, flags, args[0])
		},
	}
	cmd.Flags().StringVar(&flags.filter, "filter", "", "comma separated operation id glob patterns")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func runEmit(cmd *cobra.Command, a *app, flags *emitFlags, specURI string) error {
	if err := ValidateOutputFormat(flags.format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}
	doc, err := loadDocument(cmd, a, specURI)
	if err != nil {
		return err
	}

	opts := []walker.EmitOption{
		walker.WithFilter(walker.MatchOperations(flags.filter)),
		walker.WithEmitContext(cmd.Context()),
	}

	if flags.format == FormatText {
		sink := walker.NewWriterSink(cmd.OutOrStdout())
		if err := walker.Emit(doc, sink, opts...); err != nil {
			return err
		}
		return sink.Err()
	}

	rec := &walker.Recorder{}
	if err := walker.Emit(doc, rec, opts...); err != nil {
		return err
	}
	calls := make([]emittedCall, len(rec.Calls))
	for i, c := range rec.Calls {
		calls[i] = emittedCall{Symbol: c.Symbol, Args: c.Args}
	}
	return OutputStructured(cmd.OutOrStdout(), calls, flags.format)
}

// loadDocument reads specURI through the configured resolver, or stdin
// when specURI is "-".
func loadDocument(cmd *cobra.Command, a *app, specURI string) (parser.DocumentAccessor, error) {
	if specURI == StdinFilePath {
		data, err := ReadInput(cmd.InOrStdin(), specURI)
		if err != nil {
			return nil, fmt.Errorf("reading <stdin>: %w", err)
		}
		p := parser.New()
		p.Logger = a.parserLogger()
		res, err := p.ParseBytes(data)
		if err != nil {
			return nil, err
		}
		return res.Document, nil
	}
	r, err := a.cfg.NewResolver(a.parserLogger())
	if err != nil {
		return nil, err
	}
	return r.Load(cmd.Context(), specURI)
}
