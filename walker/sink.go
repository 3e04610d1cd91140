package walker

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Call is one recorded Sink call.
type Call struct {
	Symbol string
	Args   []any
}

// Recorder is a Sink that keeps every call in order.
type Recorder struct {
	Calls []Call
}

// Emit implements Sink.
func (r *Recorder) Emit(symbol string, args ...any) {
	r.Calls = append(r.Calls, Call{Symbol: symbol, Args: args})
}

// Symbols returns the recorded symbols in order.
func (r *Recorder) Symbols() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Symbol
	}
	return out
}

// WriterSink renders calls as a fluent route definition, one operation per
// block:
//
//	rest()
//	    .get("/pet/{petId}")
//	    .id("getPetById")
//	    .param()
//	        .name("petId")
//	        ...
//	    .endParam()
//	    .to("direct:getPetById");
//
// The first write error is kept and returned by Err; later calls are
// dropped.
type WriterSink struct {
	w       io.Writer
	err     error
	inParam bool
}

// NewWriterSink creates a WriterSink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Err returns the first write error, if any.
func (s *WriterSink) Err() error {
	return s.err
}

// Emit implements Sink.
func (s *WriterSink) Emit(symbol string, args ...any) {
	if s.err != nil {
		return
	}
	indent := "    "
	switch {
	case symbol == SymbolEndParam:
		s.inParam = false
	case s.inParam:
		indent = "        "
	}
	var line string
	if len(args) == 1 && isVerb(symbol) {
		line = "rest()\n" + indent + "." + symbol + "(" + renderArg(args[0]) + ")"
	} else {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = renderArg(a)
		}
		line = indent + "." + symbol + "(" + strings.Join(parts, ", ") + ")"
	}
	if symbol == SymbolTo {
		line += ";\n"
	}
	if symbol == SymbolParam {
		s.inParam = true
	}
	_, s.err = fmt.Fprintln(s.w, line)
}

func isVerb(symbol string) bool {
	switch symbol {
	case "get", "put", "post", "delete", "patch", "head", "options":
		return true
	}
	return false
}

func renderArg(a any) string {
	switch v := a.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return strings.Join(quoted, ", ")
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
