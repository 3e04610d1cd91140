package walker

import (
	"context"
	"strconv"
)

// WalkContext describes where the walk currently is. Handlers receive a
// fresh value per node and may keep it.
type WalkContext struct {
	// PathTemplate is the key of the current path item, e.g. "/pet/{petId}".
	PathTemplate string
	// Method is the lower-case HTTP method, empty outside an operation.
	Method string
	// OperationID is the id of the current operation, if it declares one.
	OperationID string
	// ParameterIndex is the position of the visited parameter in the
	// operation's parameter list, -1 when no parameter is being visited.
	ParameterIndex int

	ctx context.Context
}

// Context returns the context the walk was started with, or
// context.Background().
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InOperationScope reports whether an operation or one of its parameters
// is being visited.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// JSONPath renders the location of the node, e.g.
// $.paths['/pet/{petId}'].get.parameters[0].
func (wc *WalkContext) JSONPath() string {
	p := "$.paths['" + wc.PathTemplate + "']"
	if wc.Method == "" {
		return p
	}
	p += "." + wc.Method
	if wc.ParameterIndex >= 0 {
		p += ".parameters[" + strconv.Itoa(wc.ParameterIndex) + "]"
	}
	return p
}

func (wc WalkContext) forPath(pathTemplate string) *WalkContext {
	wc.PathTemplate = pathTemplate
	wc.Method = ""
	wc.OperationID = ""
	wc.ParameterIndex = -1
	return &wc
}

func (wc WalkContext) forOperation(method, operationID string) *WalkContext {
	wc.Method = method
	wc.OperationID = operationID
	wc.ParameterIndex = -1
	return &wc
}

func (wc WalkContext) forParameter(i int) *WalkContext {
	wc.ParameterIndex = i
	return &wc
}
