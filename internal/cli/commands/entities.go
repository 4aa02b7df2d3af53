package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/internal/loader"
	"github.com/adisonshadow/adb/internal/web/server"
	"github.com/adisonshadow/adb/pkg/meta"
)

func newEntitiesCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Inspect the entities in the definitions directory",
		Example: `  # List entities tagged billing
  adb entities list --tag billing

  # Show an entity by name or code
  adb entities show shop:order`,
	}

	cmd.AddCommand(newEntitiesListCommand(opts))
	cmd.AddCommand(newEntitiesShowCommand(opts))
	return cmd
}

func newEntitiesListCommand(opts *globalOptions) *cobra.Command {
	var (
		tag    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			set, err := opts.loadDefinitions(cfg)
			if err != nil {
				return err
			}

			var entries []meta.EntityEntry
			if tag != "" {
				entries = set.Registry.Entities.FindByTag(set.Owners(), tag)
			} else {
				entries = set.Registry.Entities.Collect(set.Owners())
			}

			summaries := make([]server.EntitySummary, 0, len(entries))
			for _, entry := range entries {
				summaries = append(summaries, server.EntitySummary{
					ClassName: meta.ClassName(entry.Owner),
					TableName: meta.TableName(entry.Owner),
					Info:      entry.Info,
					Columns:   len(set.Registry.Columns.Ordered(entry.Owner)),
				})
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"NAME", "CODE", "TABLE", "STATUS", "COLUMNS", "TAGS"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, s := range summaries {
				table.AddRow(s.ClassName, s.Info.Code, s.TableName, string(s.Info.Status), strconv.Itoa(s.Columns), strings.Join(s.Info.Tags, ","))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only entities carrying this tag")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func findEntity(set *loader.Set, ref string) (meta.Owner, bool) {
	if e, ok := set.Entity(ref); ok {
		return e, true
	}
	if entry, ok := set.Registry.Entities.FindByCode(set.Owners(), ref); ok {
		return entry.Owner, true
	}
	return nil, false
}

func newEntitiesShowCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <name|code>",
		Short: "Show an entity and its columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			set, err := opts.loadDefinitions(cfg)
			if err != nil {
				return err
			}

			owner, ok := findEntity(set, args[0])
			if !ok {
				var refs []string
				for _, entry := range set.Registry.Entities.Collect(set.Owners()) {
					refs = append(refs, meta.ClassName(entry.Owner), entry.Info.Code)
				}
				fmt.Fprint(cmd.ErrOrStderr(), ui.EntityNotFoundError(args[0], refs, opts.noColor))
				return fmt.Errorf("entity %q not found", args[0])
			}
			details, _ := set.Registry.Details(owner)

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, details)
			}

			ui.Header(out, details.ClassName, opts.noColor)
			kv := ui.NewKeyValueTable(out, opts.noColor)
			kv.AddRow("ID", details.Info.ID)
			kv.AddRow("Code", details.Info.Code)
			kv.AddRow("Label", details.Info.Label)
			kv.AddRow("Table", details.TableName)
			kv.AddRow("Status", string(details.Info.Status))
			kv.AddRow("Tags", strings.Join(details.Info.Tags, ", "))
			kv.AddRow("Description", details.Info.Description)
			kv.Render()
			fmt.Fprintln(out)

			table := ui.NewTable(out, []string{"MEMBER", "ID", "LABEL", "TYPE"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, col := range details.Columns {
				table.AddRow(col.Member, col.Info.ID, col.Info.Label, string(col.Info.ExtendType))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}
