package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/restoas/resolver"
)

// maxConcurrentResolves bounds the number of operations resolved at once.
const maxConcurrentResolves = 8

type resolveFlags struct {
	uris          []string
	component     string
	host          string
	basePath      string
	componentName string
	consumes      string
	produces      string
	params        []string
	format        string
}

func newResolveCommand(a *app) *cobra.Command {
	flags := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve [<spec-uri> <operationId>...] | --uri <endpoint-uri>...",
		Short: "Resolve OpenAPI operations into HTTP endpoints",
		Long: `Resolve OpenAPI operations into the HTTP endpoints that invoke them.

Operations are addressed either by a specification URI followed by one or
more operation ids, or by endpoint URIs of the form
component:[specificationUri#]operationId. Specification URIs may be file:,
classpath:, http: or https: URIs or plain paths; the class path comes from
the [resolver] configuration section.`,
		Example: `  restoas resolve petstore.json getPetById addPet
  restoas resolve --uri 'petstore:classpath:petstore.json#getPetById' --param petId=42
  restoas resolve --host https://api.example.com --format json petstore.json findPetsByStatus`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, a, flags, args)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&flags.uris, "uri", nil, "endpoint URI component:[specificationUri#]operationId (repeatable)")
	f.StringVar(&flags.component, "component", "", "component name the operations are addressed with (default rest-swagger)")
	f.StringVar(&flags.host, "host", "", "scheme, host and port overriding the specification host")
	f.StringVar(&flags.basePath, "base-path", "", "base path overriding the specification base path")
	f.StringVar(&flags.componentName, "component-name", "", "name of the HTTP producer component")
	f.StringVar(&flags.consumes, "consumes", "", "Content-Type sent with requests")
	f.StringVar(&flags.produces, "produces", "", "Accept value sent with requests")
	f.StringArrayVarP(&flags.params, "param", "p", nil, "literal path or query parameter value name=value (repeatable)")
	f.StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func (f *resolveFlags) endpointOptions() (resolver.EndpointOptions, error) {
	params, err := ParseParams(f.params)
	if err != nil {
		return resolver.EndpointOptions{}, err
	}
	opts := resolver.EndpointOptions{
		Overrides: resolver.Overrides{
			Host:          f.host,
			BasePath:      f.basePath,
			ComponentName: f.componentName,
			Consumes:      f.consumes,
			Produces:      f.produces,
		},
		AssignedComponentName: f.component,
		Parameters:            params,
	}
	return opts, opts.Validate()
}

func runResolve(cmd *cobra.Command, a *app, flags *resolveFlags, args []string) error {
	if err := ValidateOutputFormat(flags.format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}
	switch {
	case len(flags.uris) > 0 && len(args) > 0:
		return errors.New("resolve takes either --uri or <spec-uri> <operationId>..., not both")
	case len(flags.uris) > 0 && flags.component != "":
		return errors.New("--component is part of the endpoint URI")
	case len(flags.uris) == 0 && len(args) < 2:
		return errors.New("resolve requires a specification URI and at least one operation id")
	}

	opts, err := flags.endpointOptions()
	if err != nil {
		return err
	}
	r, err := a.cfg.NewResolver(a.parserLogger())
	if err != nil {
		return err
	}

	var endpoints []*resolver.EndpointDescriptor
	if len(flags.uris) > 0 {
		endpoints, err = resolveURIs(cmd.Context(), r, flags.uris, opts)
	} else {
		endpoints, err = resolveOperations(cmd.Context(), r, args[0], args[1:], opts)
	}
	if err != nil {
		return err
	}

	if flags.format == FormatText {
		for _, d := range endpoints {
			writeEndpoint(cmd.OutOrStdout(), d)
		}
		return nil
	}
	return OutputStructured(cmd.OutOrStdout(), endpoints, flags.format)
}

// resolveURIs resolves every endpoint URI concurrently. Results keep the
// order of uris; the first failure cancels the rest.
func resolveURIs(ctx context.Context, r *resolver.Resolver, uris []string, opts resolver.EndpointOptions) ([]*resolver.EndpointDescriptor, error) {
	out := make([]*resolver.EndpointDescriptor, len(uris))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolves)
	for i, uri := range uris {
		g.Go(func() error {
			d, err := r.CreateEndpointFromURI(ctx, uri, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", uri, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveOperations loads specURI once and resolves the operations against
// the shared document.
func resolveOperations(ctx context.Context, r *resolver.Resolver, specURI string, operationIDs []string, opts resolver.EndpointOptions) ([]*resolver.EndpointDescriptor, error) {
	doc, err := r.Load(ctx, specURI)
	if err != nil {
		return nil, err
	}
	out := make([]*resolver.EndpointDescriptor, len(operationIDs))
	var g errgroup.Group
	g.SetLimit(maxConcurrentResolves)
	for i, id := range operationIDs {
		g.Go(func() error {
			d, err := r.Resolve(doc, specURI, id, opts)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeEndpoint(w io.Writer, d *resolver.EndpointDescriptor) {
	Writef(w, "%s %s\n", d.Method, d.URL())
	Writef(w, "  operationId: %s\n", d.OperationID)
	Writef(w, "  component:   %s\n", d.AssignedComponentName)
	if d.Consumes != "" {
		Writef(w, "  consumes:    %s\n", d.Consumes)
	}
	if d.Produces != "" {
		Writef(w, "  produces:    %s\n", d.Produces)
	}
	for _, k := range slices.Sorted(maps.Keys(d.Parameters)) {
		Writef(w, "  %s=%v\n", k, d.Parameters[k])
	}
}
