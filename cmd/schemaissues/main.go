// Package main provides the entry point for the schemaissues CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/schemaissues/interfaces/cli"
)

func main() {
	app := cli.New()

	if err := app.Execute(context.Background()); err != nil {
		var reported *cli.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
