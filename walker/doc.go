// Package walker traverses the operations of an OpenAPI document and turns
// each one into a sequence of route-definition calls.
//
// # Walking
//
// [Walk] visits path items in document order, the operations of each path
// item in the fixed method order get, put, post, delete, patch, head,
// options, and the parameters of each operation in declaration order:
//
//	var ids []string
//	err := walker.Walk(doc,
//	    walker.WithOperationHandler(func(wc *walker.WalkContext, op *parser.Operation) walker.Action {
//	        ids = append(ids, op.OperationID)
//	        return walker.Continue
//	    }),
//	)
//
// Handlers return an [Action]: [Continue], [SkipChildren] or [Stop].
// [WithOperationPostHandler] runs after an operation's parameters, unless
// the operation handler skipped them.
//
// # Emitting
//
// [Emit] drives a [Sink] with one call per element of an operation:
//
//	get("/pet/{petId}")
//	id("getPetById")
//	produces([]string{"application/json"})
//	param() name("petId") type("path") dataType("integer") required(true) endParam()
//	to("direct:getPetById")
//
// Empty values are omitted. For OAS 3.x parameters the data type, allowed
// values and default come from the parameter schema and the collection
// format from its style. Use [MatchOperations] to restrict the operations
// by id and [WithDestinationGenerator] to choose the target of to.
//
// [Recorder] keeps the calls for inspection; [WriterSink] renders them as
// text.
package walker
