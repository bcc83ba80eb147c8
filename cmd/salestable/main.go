package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/zeebo/clingy"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ok, err := clingy.Environment{}.Run(ctx, func(cmds clingy.Commands) {
		cmds.New("report", "Prints a page of the sales table", new(cmdReport))
		cmds.New("browse", "Browses the sales table interactively", new(cmdBrowse))
		cmds.New("export", "Exports the sorted sales table to an Excel workbook", new(cmdExport))
		cmds.New("import", "Imports a sales CSV into a new sales database", new(cmdImport))
		cmds.New("generate", "Generates a synthetic sales CSV", new(cmdGenerate))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed: %+v\n", err)
		return err
	}
	if !ok {
		return errors.New("usage error")
	}
	return nil
}
