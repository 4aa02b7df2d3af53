package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adisonshadow/adb/internal/cli/config"
	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/internal/loader"
	"github.com/adisonshadow/adb/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath  string
	definitions string
	noColor     bool
	errOut      io.Writer
}

// loadConfig reads the configuration and applies flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.definitions != "" {
		cfg.Definitions.Dir = o.definitions
	}
	return cfg, nil
}

// loadDefinitions reads the definitions directory into a fresh registry
func (o *globalOptions) loadDefinitions(cfg *config.Config) (*loader.Set, error) {
	set, err := loader.New(nil, nil).LoadDir(cfg.Definitions.Dir)
	if err != nil {
		if _, statErr := os.Stat(cfg.Definitions.Dir); statErr != nil && !config.InProject(".") && o.errOut != nil {
			fmt.Fprint(o.errOut, ui.Warning(fmt.Sprintf(
				"%s does not exist and the current directory has no %s or definitions directory",
				cfg.Definitions.Dir, config.FileName), o.noColor))
		}
		return nil, fmt.Errorf("failed to load definitions: %w", err)
	}
	return set, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "adb",
		Short: "Declarative metadata registry for entities, columns and enumerations",
		Long: color.CyanString(`adb - Declarative Metadata Registry

adb reads entity, column and enumeration definitions from YAML files,
validates them, and keeps enumeration metadata in step with a database.

Features:
  • Extension column types for ids, media and enumerations
  • Enhanced enumerations with labels, colors, sorting and tags
  • Validation of every descriptor without failing fast
  • Enum metadata persistence with an optional Redis cache
  • Function-calling catalogs for OpenAI and Claude tools`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.errOut = cmd.ErrOrStderr()
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the config file (default ./adb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.definitions, "definitions", "d", "", "Definitions directory, overrides definitions.dir")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newTypesCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newEnumsCommand(opts))
	rootCmd.AddCommand(newEntitiesCommand(opts))
	rootCmd.AddCommand(newIDsCommand(opts))
	rootCmd.AddCommand(newToolsCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the adb version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(out, "adb version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q, expected one of %v", format, allowed)
}
