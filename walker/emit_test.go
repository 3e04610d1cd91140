package walker

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/parser"
)

func call(symbol string, args ...any) Call {
	return Call{Symbol: symbol, Args: args}
}

func TestEmitOAS2(t *testing.T) {
	doc := parseFile(t, "petstore-2.0.json")
	rec := &Recorder{}
	require.NoError(t, Emit(doc, rec))

	assert.Equal(t, []Call{
		call("get", "/pet/{petId}"),
		call(SymbolID, "getPetById"),
		call(SymbolProduces, []string{"application/xml", "application/json"}),
		call(SymbolParam),
		call(SymbolName, "petId"),
		call(SymbolType, "path"),
		call(SymbolDataType, "integer"),
		call(SymbolRequired, true),
		call(SymbolEndParam),
		call(SymbolTo, "direct:getPetById"),

		call("delete", "/pet/{petId}"),
		call(SymbolID, "deletePet"),
		call(SymbolParam),
		call(SymbolName, "api_key"),
		call(SymbolType, "header"),
		call(SymbolDataType, "string"),
		call(SymbolRequired, false),
		call(SymbolEndParam),
		call(SymbolParam),
		call(SymbolName, "petId"),
		call(SymbolType, "path"),
		call(SymbolDataType, "integer"),
		call(SymbolRequired, true),
		call(SymbolEndParam),
		call(SymbolTo, "direct:deletePet"),

		call("get", "/pet/findByStatus"),
		call(SymbolID, "findPetsByStatus"),
		call(SymbolParam),
		call(SymbolName, "status"),
		call(SymbolType, "query"),
		call(SymbolDataType, "array"),
		call(SymbolCollectionFormat, "multi"),
		call(SymbolArrayType, "string"),
		call(SymbolRequired, true),
		call(SymbolEndParam),
		call(SymbolParam),
		call(SymbolName, "limit"),
		call(SymbolType, "query"),
		call(SymbolDataType, "integer"),
		call(SymbolRequired, false),
		call(SymbolEndParam),
		call(SymbolTo, "direct:findPetsByStatus"),

		call("post", "/pet"),
		call(SymbolID, "addPet"),
		call(SymbolConsumes, []string{"application/json", "application/xml"}),
		call(SymbolParam),
		call(SymbolName, "body"),
		call(SymbolType, "body"),
		call(SymbolRequired, true),
		call(SymbolEndParam),
		call(SymbolTo, "direct:addPet"),
	}, rec.Calls)
}

func TestEmitOAS3(t *testing.T) {
	doc := parseFile(t, "petstore-3.0.yaml")
	rec := &Recorder{}
	require.NoError(t, Emit(doc, rec))

	assert.Equal(t, []Call{
		call("put", "/pet"),
		call(SymbolID, "updatePet"),
		call(SymbolConsumes, []string{"application/json", "application/xml"}),
		call(SymbolProduces, []string{"application/json", "application/xml"}),
		call(SymbolTo, "direct:updatePet"),

		call("get", "/pet/findByTags"),
		call(SymbolID, "findPetsByTags"),
		call(SymbolProduces, []string{"application/json", "text/plain"}),
		call(SymbolParam),
		call(SymbolName, "tags"),
		call(SymbolType, "query"),
		call(SymbolDataType, "array"),
		call(SymbolCollectionFormat, "form"),
		call(SymbolArrayType, "string"),
		call(SymbolRequired, false),
		call(SymbolEndParam),
		call(SymbolTo, "direct:findPetsByTags"),

		call("get", "/pet/{petId}"),
		call(SymbolID, "getPetById"),
		call(SymbolParam),
		call(SymbolName, "petId"),
		call(SymbolType, "path"),
		call(SymbolDataType, "integer"),
		call(SymbolRequired, true),
		call(SymbolEndParam),
		call(SymbolParam),
		call(SymbolName, "status"),
		call(SymbolType, "query"),
		call(SymbolDataType, "string"),
		call(SymbolAllowableValues, []string{"available", "sold"}),
		call(SymbolDefaultValue, "available"),
		call(SymbolRequired, false),
		call(SymbolEndParam),
		call(SymbolTo, "direct:getPetById"),
	}, rec.Calls)
}

const untypedSpec = `
swagger: "2.0"
info: {title: untyped, version: "1"}
paths:
  /orders/{orderId}/items:
    get:
      description: List items
      parameters:
        - name: nowhere
        - name: orderId
          in: path
          required: true
          type: string
          description: The order
        - name: size
          in: query
          type: integer
          enum: [1, 2]
          default: 1
`

func TestEmitWithoutOperationID(t *testing.T) {
	res, err := parser.ParseBytes([]byte(untypedSpec))
	require.NoError(t, err)
	rec := &Recorder{}
	require.NoError(t, Emit(res.Document, rec))

	assert.Equal(t, []Call{
		call("get", "/orders/{orderId}/items"),
		call(SymbolDescription, "List items"),
		call(SymbolParam),
		call(SymbolName, "orderId"),
		call(SymbolType, "path"),
		call(SymbolDataType, "string"),
		call(SymbolRequired, true),
		call(SymbolDescription, "The order"),
		call(SymbolEndParam),
		call(SymbolParam),
		call(SymbolName, "size"),
		call(SymbolType, "query"),
		call(SymbolDataType, "integer"),
		call(SymbolAllowableValues, []string{"1", "2"}),
		call(SymbolDefaultValue, "1"),
		call(SymbolRequired, false),
		call(SymbolEndParam),
		call(SymbolTo, "direct:getOrdersOrderIdItems"),
	}, rec.Calls)
}

func TestEmitFilter(t *testing.T) {
	doc := parseFile(t, "petstore-2.0.json")

	tests := []struct {
		patterns string
		want     []string
	}{
		{"", []string{"get", "delete", "get", "post"}},
		{"getPetById", []string{"get"}},
		{"find*, add*", []string{"get", "post"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.patterns, func(t *testing.T) {
			var verbs []string
			sink := SinkFunc(func(symbol string, _ ...any) {
				if isVerb(symbol) {
					verbs = append(verbs, symbol)
				}
			})
			require.NoError(t, Emit(doc, sink, WithFilter(MatchOperations(tt.patterns))))
			assert.Equal(t, tt.want, verbs)
		})
	}

	assert.True(t, MatchOperations(" , ")(""))
	assert.False(t, MatchOperations("*")(""))
}

func TestEmitDestination(t *testing.T) {
	doc := parseFile(t, "petstore-2.0.json")
	var targets []any
	sink := SinkFunc(func(symbol string, args ...any) {
		if symbol == SymbolTo {
			targets = append(targets, args[0])
		}
	})
	gen := DestinationGeneratorFunc(func(method, pathTemplate string, op *parser.Operation) string {
		return "seda:" + method + ":" + op.OperationID
	})
	require.NoError(t, Emit(doc, sink, WithDestinationGenerator(gen), WithFilter(MatchOperations("*Pet"))))
	assert.Equal(t, []any{"seda:delete:deletePet", "seda:post:addPet"}, targets)
}

func TestSyntheticOperationName(t *testing.T) {
	assert.Equal(t, "getPetsPetId", SyntheticOperationName("get", "/pets/{petId}"))
	assert.Equal(t, "post", SyntheticOperationName("POST", "/"))
	assert.Equal(t, "deleteUserV2", SyntheticOperationName("delete", "/user-v2"))
}

func TestEmitCancelled(t *testing.T) {
	doc := parseFile(t, "petstore-2.0.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &Recorder{}
	assert.ErrorIs(t, Emit(doc, rec, WithEmitContext(ctx)), context.Canceled)
	assert.Empty(t, rec.Calls)
	assert.Error(t, Emit(doc, nil))
}

func TestWriterSink(t *testing.T) {
	res, err := parser.ParseBytes([]byte(untypedSpec))
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	require.NoError(t, Emit(res.Document, sink, WithFilter(MatchOperations(""))))
	require.NoError(t, sink.Err())

	want := `rest()
    .get("/orders/{orderId}/items")
    .description("List items")
    .param()
        .name("orderId")
        .type("path")
        .dataType("string")
        .required(true)
        .description("The order")
    .endParam()
    .param()
        .name("size")
        .type("query")
        .dataType("integer")
        .allowableValues("1", "2")
        .defaultValue("1")
        .required(false)
    .endParam()
    .to("direct:getOrdersOrderIdItems");

`
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestWriterSinkError(t *testing.T) {
	w := &failingWriter{}
	sink := NewWriterSink(w)
	sink.Emit("get", "/a")
	sink.Emit(SymbolTo, "direct:a")
	assert.EqualError(t, sink.Err(), "disk full")
	assert.Equal(t, 1, w.n)
}
