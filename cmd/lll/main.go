// Copyright (c) 2023 Colin McRae

// lll reduces an integer lattice basis with exact LLL or block-sweep BKZ and
// prints the reduced basis as an array literal.
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "lll"
	app.Usage = "reduce an integer lattice basis with exact LLL or block-sweep BKZ"
	app.HideVersion = true
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = appFlags
	app.Action = func(ctx *cli.Context) error {
		return run(ctx, stdout, stderr)
	}
	return app
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}
