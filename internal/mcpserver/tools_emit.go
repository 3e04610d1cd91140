package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restoas/walker"
)

type emitOperationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to describe"`
	Filter string    `json:"filter,omitempty" jsonschema:"Comma-separated operationId globs (e.g. get*\\,addPet). Operations without an operationId are excluded when set"`
	Format string    `json:"format,omitempty" jsonschema:"calls (default) for structured calls or text for a fluent route definition"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N operations"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of operations to return"`
}

type emittedCall struct {
	Symbol string `json:"symbol"`
	Args   []any  `json:"args,omitempty"`
}

type emittedOperation struct {
	Method string        `json:"method"`
	Path   string        `json:"path"`
	To     string        `json:"to"`
	Calls  []emittedCall `json:"calls,omitempty"`
}

type collectedOperation struct {
	emittedOperation
	text strings.Builder
}

type emitOperationsOutput struct {
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Operations []emittedOperation `json:"operations,omitempty"`
	Text       string             `json:"text,omitempty"`
}

// operationCollector splits the call stream into operations. The verb call
// opens an operation and the to call closes it.
type operationCollector struct {
	ops     []*collectedOperation
	current *collectedOperation
	render  *walker.WriterSink
}

func (c *operationCollector) Emit(symbol string, args ...any) {
	if c.current == nil {
		c.current = &collectedOperation{emittedOperation: emittedOperation{Method: symbol}}
		if len(args) > 0 {
			c.current.Path, _ = args[0].(string)
		}
		c.render = walker.NewWriterSink(&c.current.text)
		c.ops = append(c.ops, c.current)
	}
	c.current.Calls = append(c.current.Calls, emittedCall{Symbol: symbol, Args: args})
	c.render.Emit(symbol, args...)
	if symbol == walker.SymbolTo {
		if len(args) > 0 {
			c.current.To, _ = args[0].(string)
		}
		c.current = nil
	}
}

func (t *toolset) handleEmitOperations(ctx context.Context, _ *mcp.CallToolRequest, input emitOperationsInput) (*mcp.CallToolResult, emitOperationsOutput, error) {
	text := false
	switch strings.ToLower(input.Format) {
	case "", "calls":
	case "text":
		text = true
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: calls, text", input.Format)), emitOperationsOutput{}, nil
	}
	if err := validateGlobPatterns(input.Filter); err != nil {
		return errResult(err), emitOperationsOutput{}, nil
	}

	result, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), emitOperationsOutput{}, nil
	}

	collector := &operationCollector{}
	if err := walker.Emit(result.Document, collector,
		walker.WithFilter(walker.MatchOperations(input.Filter)),
		walker.WithEmitContext(ctx),
	); err != nil {
		return errResult(err), emitOperationsOutput{}, nil
	}

	page := paginate(collector.ops, input.Offset, input.Limit)
	output := emitOperationsOutput{
		Total:    len(collector.ops),
		Returned: len(page),
	}
	if text {
		var sb strings.Builder
		for _, op := range page {
			sb.WriteString(op.text.String())
		}
		output.Text = sb.String()
		return nil, output, nil
	}
	output.Operations = makeSlice[emittedOperation](len(page))
	for _, op := range page {
		output.Operations = append(output.Operations, op.emittedOperation)
	}
	return nil, output, nil
}
