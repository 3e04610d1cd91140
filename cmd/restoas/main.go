// Command restoas generates Swagger 2.0 documents from REST route
// definitions and resolves OpenAPI operations into HTTP endpoints.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/restoas/cmd/restoas/commands"
)

func main() {
	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
