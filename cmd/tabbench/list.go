package main

import (
	"fmt"
	"os"

	"github.com/oleg578/tabular/engine"
)

// ListCmd prints the registered engines and record shapes.
type ListCmd struct{}

// Run prints the engine names and the record shapes.
func (ListCmd) Run() error {
	fmt.Fprintln(os.Stdout, "engines:")
	for _, name := range engine.Names() {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	fmt.Fprintln(os.Stdout, "shapes:")
	for _, s := range shapes {
		fmt.Fprintf(os.Stdout, "  %s  %s\n", s.name, s.help)
	}
	return nil
}
