package main

import (
	"fmt"
	"os"

	"answerkey/internal/config"

	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", nameStyle.Render("function:"), a.cfg.Function)
			fmt.Fprintf(out, "%s %s (sheet %q, column %q)\n", nameStyle.Render("input:"), a.cfg.Input.Path, a.cfg.Input.Sheet, a.cfg.Input.Column)
			fmt.Fprintf(out, "%s %s (padding %d)\n", nameStyle.Render("output:"), a.cfg.Output.Path, a.cfg.Output.PaddingWidth)
			fmt.Fprintf(out, "%s %d\n", nameStyle.Render("bit width:"), a.cfg.Decode.BitWidth)
			fmt.Fprintf(out, "%s %v (%s)\n", nameStyle.Render("ledger:"), a.cfg.Ledger.Enabled, a.cfg.Ledger.Path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	return configCmd
}
