package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the extractors command.
func (c *ExtractorsCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range deps.Dispatcher.List() {
		fmt.Fprintf(w, "%s\t%s\n", e.Name(), e.URLPattern().Expr)
	}
	return w.Flush()
}
