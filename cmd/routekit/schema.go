package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routekit-dev/routekit/schema"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [section]",
		Short: "Print the JSON Schema for a document model section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := schema.DefaultRegistry()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(registry.Sections(), "\n"))
				return nil
			}
			generated, ok := registry.Schema(args[0])
			if !ok {
				return fmt.Errorf("unknown section %q: available sections are %s",
					args[0], strings.Join(registry.Sections(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), generated)
			return nil
		},
	}
}
