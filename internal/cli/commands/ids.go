package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/pkg/idgen"
	"github.com/adisonshadow/adb/pkg/meta"
)

// idSource produces sample ids for one column
type idSource func() (any, error)

func newIDSource(info meta.ColumnInfo, name string) (idSource, error) {
	switch {
	case info.SnowflakeID != nil:
		sf, err := idgen.NewSnowflake(*info.SnowflakeID)
		if err != nil {
			return nil, err
		}
		return sf.Next, nil
	case info.GUIDID != nil:
		g, err := idgen.NewGUIDGenerator(*info.GUIDID)
		if err != nil {
			return nil, err
		}
		return func() (any, error) {
			v, err := g.Next(name)
			if b, ok := v.([]byte); ok {
				return fmt.Sprintf("%x", b), err
			}
			return v, err
		}, nil
	case info.AutoIncrementID != nil:
		seq, err := idgen.NewSequence(*info.AutoIncrementID)
		if err != nil {
			return nil, err
		}
		return func() (any, error) { return seq.Next(), nil }, nil
	default:
		return nil, fmt.Errorf("column %q has no id config", info.Label)
	}
}

func newIDsCommand(opts *globalOptions) *cobra.Command {
	var (
		count int
		name  string
		short bool
	)

	cmd := &cobra.Command{
		Use:   "ids [<entity> <member>]",
		Short: "Generate sample ids for an id column",
		Long: `Generate sample ids with the config of an id column.

Snowflake, GUID and auto-increment columns are supported. With --short the
command prints lowercase ULIDs suitable for descriptor ids instead.`,
		Example: `  # Five snowflake ids for Order.id
  adb ids Order id -n 5

  # v5 GUIDs need a name
  adb ids Customer uid --name alice@example.com

  # Descriptor ids
  adb ids --short -n 3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if short {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			out := cmd.OutOrStdout()

			if short {
				for i := 0; i < count; i++ {
					fmt.Fprintln(out, idgen.ShortID())
				}
				return nil
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
				return fmt.Errorf("entity %q not found", args[0])
			}
			info, ok := set.Registry.Columns.Get(owner, args[1])
			if !ok {
				fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("%s has no described member %q", args[0], args[1]), opts.noColor))
				return fmt.Errorf("column %s.%s not found", args[0], args[1])
			}

			next, err := newIDSource(info, name)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				id, err := next()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ids to generate")
	cmd.Flags().StringVar(&name, "name", "", "Name hashed into v5 GUIDs")
	cmd.Flags().BoolVar(&short, "short", false, "Generate descriptor ids instead of column ids")
	return cmd
}
