package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/pkg/meta"
)

func newTypesCommand(opts *globalOptions) *cobra.Command {
	var (
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the column types",
		Long: `List the column types a ColumnInfo may use.

Extension types carry their own config block (adb-media, adb-enum and the
id types). Primitive types map straight onto storage columns.`,
		Example: `  # List every type
  adb types

  # Only extension types, as JSON
  adb types --category extension --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}

			var types []meta.TypeDescriptor
			switch meta.TypeCategory(category) {
			case "":
				types = meta.TypeCatalog()
			case meta.CategoryExtension:
				types = meta.ExtensionTypes()
			case meta.CategoryPrimitive:
				types = meta.PrimitiveTypes()
			default:
				return fmt.Errorf("unknown category %q, expected extension or primitive", category)
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), types)
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"KEY", "LABEL", "CATEGORY"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, t := range types {
				table.AddRow(t.Key, t.Label, string(t.Category))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category: extension or primitive")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}
