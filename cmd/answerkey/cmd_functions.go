package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var functionDescriptions = map[string]string{
	"bstep":        "binary step, f(x) = 1 if x >= 0 else 0",
	"bstep-strict": "strict step, f(x) = 1 if x > 0 else 0",
}

func (a *app) newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the registered activation functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Activation functions"))
			for _, name := range a.registry.Names() {
				marker := "  "
				if name == a.cfg.Function {
					marker = okStyle.Render("* ")
				}
				desc, ok := functionDescriptions[name]
				if !ok {
					desc = "custom"
				}
				fmt.Fprintf(out, "%s%s %s\n", marker, nameStyle.Render(name), dimStyle.Render(desc))
			}
			return nil
		},
	}
}
