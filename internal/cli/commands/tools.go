package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/pkg/catalog"
)

func newToolsCommand(opts *globalOptions) *cobra.Command {
	var (
		format   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "tools [name]",
		Short: "Print the function-calling catalog",
		Long: fmt.Sprintf(`Print the function-calling catalog (version %s).

The catalog describes every registry operation as a JSON schema that can be
handed to OpenAI function calling or to Claude tools.`, catalog.Version),
		Example: `  # Every function in OpenAI shape
  adb tools

  # Enum functions as Claude tools
  adb tools --category enum --format claude

  # One function
  adb tools get_enum_metadata`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "openai", "claude", "table"); err != nil {
				return err
			}

			fns := catalog.OpenAIFunctions()
			if category != "" {
				c, ok := catalog.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q, expected one of %v", category, catalog.Categories())
				}
				fns = catalog.ByCategory(c)
			}
			if len(args) == 1 {
				fn, ok := catalog.ByName(args[0])
				if !ok {
					suggestions := ui.FindSimilar(args[0], catalog.Names(), nil)
					if len(suggestions) > 0 {
						return fmt.Errorf("unknown function %q, did you mean %s?", args[0], suggestions[0])
					}
					return fmt.Errorf("unknown function %q", args[0])
				}
				fns = []catalog.Function{fn}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "claude":
				tools := make([]catalog.ClaudeTool, 0, len(fns))
				for _, fn := range fns {
					tools = append(tools, fn.ClaudeTool())
				}
				return writeJSON(out, tools)
			case "table":
				table := ui.NewTable(out, []string{"NAME", "DESCRIPTION"}, &ui.TableOptions{NoColor: opts.noColor})
				for _, fn := range fns {
					table.AddRow(fn.Name, fn.Description)
				}
				table.Render()
				return nil
			default:
				return writeJSON(out, fns)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "openai", "Output format: openai, claude or table")
	cmd.Flags().StringVar(&category, "category", "", "Only functions of this category")
	return cmd
}
