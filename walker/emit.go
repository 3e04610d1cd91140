package walker

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/restoas/parser"
)

// Symbols passed to a Sink.
const (
	SymbolID               = "id"
	SymbolDescription      = "description"
	SymbolConsumes         = "consumes"
	SymbolProduces         = "produces"
	SymbolParam            = "param"
	SymbolName             = "name"
	SymbolType             = "type"
	SymbolDataType         = "dataType"
	SymbolAllowableValues  = "allowableValues"
	SymbolCollectionFormat = "collectionFormat"
	SymbolDefaultValue     = "defaultValue"
	SymbolArrayType        = "arrayType"
	SymbolRequired         = "required"
	SymbolEndParam         = "endParam"
	SymbolTo               = "to"
)

// Sink receives the typed calls of an emit run. The verb call uses the
// lower-case HTTP method as its symbol and the path template as its only
// argument; every other call uses one of the Symbol constants.
type Sink interface {
	Emit(symbol string, args ...any)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(symbol string, args ...any)

// Emit implements Sink.
func (f SinkFunc) Emit(symbol string, args ...any) {
	f(symbol, args...)
}

// DestinationGenerator chooses the endpoint an operation is routed to.
type DestinationGenerator interface {
	DestinationFor(method, pathTemplate string, op *parser.Operation) string
}

// DestinationGeneratorFunc adapts a function to DestinationGenerator.
type DestinationGeneratorFunc func(method, pathTemplate string, op *parser.Operation) string

// DestinationFor implements DestinationGenerator.
func (f DestinationGeneratorFunc) DestinationFor(method, pathTemplate string, op *parser.Operation) string {
	return f(method, pathTemplate, op)
}

// DirectDestination routes every operation to "direct:<operationId>".
// Operations without an id get a camel-cased name built from the method and
// the path, e.g. "direct:getPetsPetId" for GET /pets/{petId}.
type DirectDestination struct{}

// DestinationFor implements DestinationGenerator.
func (DirectDestination) DestinationFor(method, pathTemplate string, op *parser.Operation) string {
	if op != nil && op.OperationID != "" {
		return "direct:" + op.OperationID
	}
	return "direct:" + SyntheticOperationName(method, pathTemplate)
}

// SyntheticOperationName builds a camel-cased name from method and the
// literal and templated segments of pathTemplate.
func SyntheticOperationName(method, pathTemplate string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(cases.Lower(language.Und).String(method))
	words := strings.FieldsFunc(pathTemplate, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// OperationFilter decides which operations are emitted, by operationId.
type OperationFilter func(operationID string) bool

// MatchOperations returns a filter accepting operation ids that match any
// of the comma-separated glob patterns (path.Match syntax). An empty pattern
// list accepts every operation, including those without an id.
func MatchOperations(patterns string) OperationFilter {
	var globs []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			globs = append(globs, p)
		}
	}
	if len(globs) == 0 {
		return func(string) bool { return true }
	}
	return func(id string) bool {
		if id == "" {
			return false
		}
		for _, g := range globs {
			if ok, err := path.Match(g, id); err == nil && ok {
				return true
			}
		}
		return false
	}
}

type emitter struct {
	sink        Sink
	filter      OperationFilter
	destination DestinationGenerator
	ctx         context.Context
}

// EmitOption configures Emit.
type EmitOption func(*emitter)

// WithFilter restricts the emitted operations.
func WithFilter(f OperationFilter) EmitOption {
	return func(e *emitter) { e.filter = f }
}

// WithDestinationGenerator sets the destination strategy. The default is
// DirectDestination.
func WithDestinationGenerator(g DestinationGenerator) EmitOption {
	return func(e *emitter) { e.destination = g }
}

// WithEmitContext sets the context checked between path items.
func WithEmitContext(ctx context.Context) EmitOption {
	return func(e *emitter) { e.ctx = ctx }
}

// Emit visits every operation of doc and describes it to sink as a
// sequence of typed calls: the verb, id, description, consumes, produces,
// one param ... endParam block per parameter and finally to. Empty values
// are not emitted. Parameters without a location are skipped.
func Emit(doc parser.DocumentAccessor, sink Sink, opts ...EmitOption) error {
	if sink == nil {
		return fmt.Errorf("walker: nil sink")
	}
	e := &emitter{sink: sink, destination: DirectDestination{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.filter == nil {
		e.filter = MatchOperations("")
	}

	walkOpts := []Option{
		WithOperationHandler(func(wc *WalkContext, op *parser.Operation) Action {
			if !e.filter(op.OperationID) {
				return SkipChildren
			}
			e.operation(doc, wc, op)
			return SkipChildren
		}),
	}
	if e.ctx != nil {
		walkOpts = append(walkOpts, WithUserContext(e.ctx))
	}
	return Walk(doc, walkOpts...)
}

func (e *emitter) operation(doc parser.DocumentAccessor, wc *WalkContext, op *parser.Operation) {
	e.sink.Emit(wc.Method, wc.PathTemplate)
	e.value(SymbolID, op.OperationID)
	e.value(SymbolDescription, op.Description)
	e.list(SymbolConsumes, doc.OperationConsumes(op))
	e.list(SymbolProduces, doc.OperationProduces(op))
	for _, p := range op.Parameters {
		if p == nil || p.In == "" {
			continue
		}
		e.parameter(p)
	}
	e.sink.Emit(SymbolTo, e.destination.DestinationFor(wc.Method, wc.PathTemplate, op))
}

func (e *emitter) parameter(p *parser.Parameter) {
	e.sink.Emit(SymbolParam)
	e.value(SymbolName, p.Name)
	e.value(SymbolType, p.In)
	if p.In != parser.ParamInBody {
		if p.Schema != nil {
			// OAS 3.x: the primitive view lives in the schema
			dataType := p.Schema.TypeName()
			e.value(SymbolDataType, dataType)
			e.list(SymbolAllowableValues, stringList(p.Schema.Enum))
			e.value(SymbolCollectionFormat, p.Style)
			e.value(SymbolDefaultValue, stringValue(p.Schema.Default))
			if dataType == "array" && p.Schema.Items != nil {
				e.value(SymbolArrayType, p.Schema.Items.TypeName())
			}
		} else {
			e.value(SymbolDataType, p.Type)
			e.list(SymbolAllowableValues, stringList(p.Enum))
			e.value(SymbolCollectionFormat, p.CollectionFormat)
			e.value(SymbolDefaultValue, stringValue(p.Default))
			if p.Type == "array" && p.Items != nil {
				e.value(SymbolArrayType, p.Items.Type)
			}
		}
	}
	e.sink.Emit(SymbolRequired, p.Required)
	e.value(SymbolDescription, p.Description)
	e.sink.Emit(SymbolEndParam)
}

func (e *emitter) value(symbol, v string) {
	if v != "" {
		e.sink.Emit(symbol, v)
	}
}

func (e *emitter) list(symbol string, values []string) {
	if len(values) > 0 {
		e.sink.Emit(symbol, values)
	}
}

func stringList(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, stringValue(v))
	}
	return out
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
