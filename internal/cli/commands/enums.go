package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/internal/loader"
	"github.com/adisonshadow/adb/internal/web/server"
	"github.com/adisonshadow/adb/pkg/enumsync"
)

// newEnumsCommand creates the enums command group
func newEnumsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enums",
		Short: "Inspect and persist enumerations",
		Long: `Inspect the enumerations in the definitions directory and keep the
__enums__ table in step with them.`,
		Example: `  # List enumerations
  adb enums list

  # Show one enumeration by code, name or id
  adb enums show order:status

  # Save every enumeration to the database
  adb enums sync`,
	}

	cmd.AddCommand(newEnumsListCommand(opts))
	cmd.AddCommand(newEnumsShowCommand(opts))
	cmd.AddCommand(newEnumsSyncCommand(opts))
	cmd.AddCommand(newEnumsRecordsCommand(opts))
	cmd.AddCommand(newEnumsDeactivateCommand(opts))

	return cmd
}

type enumSummary struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	ID     string `json:"id"`
	Label  string `json:"label"`
	Values int    `json:"valueCount"`
	Source string `json:"source"`
}

func newEnumsListCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the enumerations in the definitions directory",
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

			summaries := make([]enumSummary, 0, len(set.Enums))
			for _, ne := range set.Enums {
				summaries = append(summaries, enumSummary{
					Name:   ne.Name,
					Code:   ne.Enum.Code(),
					ID:     ne.Enum.ID(),
					Label:  ne.Enum.Label(),
					Values: len(ne.Enum.Keys()),
					Source: ne.Source,
				})
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"NAME", "CODE", "ID", "LABEL", "VALUES"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, s := range summaries {
				table.AddRow(s.Name, s.Code, s.ID, s.Label, strconv.Itoa(s.Values))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func findEnum(set *loader.Set, ref string) (loader.NamedEnum, bool) {
	if ne, ok := set.Enum(ref); ok {
		return ne, true
	}
	return set.EnumByID(ref)
}

func enumRefs(set *loader.Set) []string {
	refs := make([]string, 0, len(set.Enums)*2)
	for _, ne := range set.Enums {
		refs = append(refs, ne.Name, ne.Enum.Code())
	}
	return refs
}

func newEnumsShowCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <code|name|id>",
		Short: "Show an enumeration and its items",
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

			ne, ok := findEnum(set, args[0])
			if !ok {
				fmt.Fprint(cmd.ErrOrStderr(), ui.EnumNotFoundError(args[0], enumRefs(set), opts.noColor))
				return fmt.Errorf("enumeration %q not found", args[0])
			}
			e := ne.Enum

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, server.EnumView{Snapshot: e.Snapshot(), Items: e.SortedItems()})
			}

			ui.Header(out, e.Label(), opts.noColor)
			kv := ui.NewKeyValueTable(out, opts.noColor)
			kv.AddRow("ID", e.ID())
			kv.AddRow("Code", e.Code())
			kv.AddRow("Name", ne.Name)
			kv.AddRow("Record", enumsync.EnumName(e.Code()))
			kv.AddRow("Description", e.Description())
			kv.AddRow("Source", ne.Source)
			kv.Render()
			fmt.Fprintln(out)

			table := ui.NewTable(out, []string{"KEY", "VALUE", "LABEL", "COLOR", "SORT", "STATE"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, it := range e.SortedItems() {
				label, colour, sortOrder, state := "", "", "", "enabled"
				if it.Config != nil {
					label = it.Config.Label
					colour = it.Config.Color
					sortOrder = strconv.Itoa(it.Config.Sort)
					if it.Config.Disabled {
						state = "disabled"
					}
				}
				table.AddRow(it.Key, fmt.Sprint(it.Value), label, colour, sortOrder, state)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func newEnumsSyncCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Save every enumeration to the __enums__ table",
		Long: `Save every enumeration in the definitions directory to the __enums__ table.

Existing rows are matched by enum id and updated in place. The table is
created when it does not exist. Enumerations that fail to save are logged
and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			set, err := opts.loadDefinitions(cfg)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			store, err := openEnumStore(ctx, cfg, logger, true)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := enumsync.NewService(store.repo, set.Registry, set.Cache, logger)
			enums := set.EnhancedEnums()
			saved := svc.SaveEnums(ctx, enums)
			logger.Info("enum sync finished", zap.Int("saved", len(saved)), zap.Int("total", len(enums)))

			out := cmd.OutOrStdout()
			table := ui.NewTable(out, []string{"ROW", "ENUM ID", "CODE", "RECORD"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, rec := range saved {
				table.AddRow(strconv.FormatInt(rec.ID, 10), rec.EnumID, rec.Code, rec.EnumName)
			}
			table.Render()

			if failed := len(enums) - len(saved); failed > 0 {
				return fmt.Errorf("%d of %d enumerations failed to sync", failed, len(enums))
			}
			ui.WriteSuccess(out, fmt.Sprintf("Synced %d enumerations", len(saved)), opts.noColor)
			return nil
		},
	}
	return cmd
}

func newEnumsRecordsCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the active rows of the __enums__ table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := openEnumStore(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := enumsync.NewService(store.repo, nil, nil, logger).ListActive(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list enum records: %w", err)
			}
			if records == nil {
				records = []*enumsync.Record{}
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			table := ui.NewTable(cmd.OutOrStdout(), []string{"ROW", "ENUM ID", "CODE", "LABEL", "UPDATED"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, rec := range records {
				table.AddRow(strconv.FormatInt(rec.ID, 10), rec.EnumID, rec.Code, rec.Label, rec.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func newEnumsDeactivateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <enum-id>",
		Short: "Mark an __enums__ row inactive",
		Long:  "Mark an __enums__ row inactive. Rows are never deleted; the next sync reactivates it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := openEnumStore(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := enumsync.NewService(store.repo, nil, nil, logger).Deactivate(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to deactivate %s: %w", args[0], err)
			}
			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deactivated %s", args[0]), opts.noColor)
			return nil
		},
	}
}
