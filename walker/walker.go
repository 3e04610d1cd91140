package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/restoas/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// PathHandler is called for each path item, in document order.
type PathHandler func(wc *WalkContext, pathItem *parser.PathItem) Action

// OperationHandler is called for each operation of a path item, in the
// fixed method order get, put, post, delete, patch, head, options.
type OperationHandler func(wc *WalkContext, op *parser.Operation) Action

// ParameterHandler is called for each parameter of an operation, in
// declaration order.
type ParameterHandler func(wc *WalkContext, param *parser.Parameter) Action

// OperationPostHandler is called after the parameters of an operation have
// been visited. It is not called when the operation handler returned
// SkipChildren or Stop.
type OperationPostHandler func(wc *WalkContext, op *parser.Operation)

// Walker traverses the paths of OpenAPI documents and calls handlers for
// path items, operations and parameters.
type Walker struct {
	onPath          PathHandler
	onOperation     OperationHandler
	onParameter     ParameterHandler
	onOperationPost OperationPostHandler

	userCtx context.Context
	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{}
}

// Option configures the Walker.
type Option func(*Walker)

// WithPathHandler sets the handler for path items.
func WithPathHandler(fn PathHandler) Option {
	return func(w *Walker) { w.onPath = fn }
}

// WithOperationHandler sets the handler for Operation objects.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithParameterHandler sets the handler for operation parameters.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithOperationPostHandler sets the handler called after an operation's
// parameters were visited.
func WithOperationPostHandler(fn OperationPostHandler) Option {
	return func(w *Walker) { w.onOperationPost = fn }
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a cancelled
// context ends the walk with its error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// Walk traverses doc and calls the registered handlers.
func Walk(doc parser.DocumentAccessor, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("walker: nil document")
	}
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.walk(doc)
}

// WalkResult walks the document of a parse result.
func WalkResult(result *parser.ParseResult, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}
	return Walk(result.Document, opts...)
}

func (w *Walker) walk(doc parser.DocumentAccessor) error {
	w.stopped = false
	ctx := w.userCtx
	if ctx == nil {
		ctx = context.Background()
	}
	root := WalkContext{ctx: ctx, ParameterIndex: -1}

	for pathTemplate, item := range doc.GetPaths().All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if item == nil {
			continue
		}
		pc := root.forPath(pathTemplate)
		if w.onPath != nil && !w.handleAction(w.onPath(pc, item)) {
			if w.stopped {
				return nil
			}
			continue
		}
		for method, op := range item.Operations() {
			w.walkOperation(pc.forOperation(method, op.OperationID), op)
			if w.stopped {
				return nil
			}
		}
	}
	return nil
}

func (w *Walker) walkOperation(wc *WalkContext, op *parser.Operation) {
	if w.onOperation != nil && !w.handleAction(w.onOperation(wc, op)) {
		return
	}
	if w.onParameter != nil {
		for i, p := range op.Parameters {
			if p == nil {
				continue
			}
			if w.onParameter(wc.forParameter(i), p) == Stop {
				w.stopped = true
				return
			}
		}
	}
	if w.onOperationPost != nil {
		w.onOperationPost(wc, op)
	}
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
