package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/radlog/radlog/pkg/parser"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the metadata header of a stat log",
		Long: `Parse a single stat log and print its collector-defined YAML metadata
document along with the parsed sample count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, rowErrs, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}

			if len(parsed.Metadata) > 0 {
				encoded, err := yaml.Marshal(parsed.Metadata)
				if err != nil {
					return fmt.Errorf("encoding metadata: %w", err)
				}
				cmd.Print(string(encoded))
			}

			cmd.Printf("samples: %d\n", parsed.Samples.Len())
			if len(rowErrs) > 0 {
				cmd.Printf("rows skipped: %d\n", len(rowErrs))
			}
			return nil
		},
	}
}
