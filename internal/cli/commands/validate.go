package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/adisonshadow/adb/internal/cli/ui"
	"github.com/adisonshadow/adb/internal/loader"
	"github.com/adisonshadow/adb/pkg/validation"
)

// ValidationReport is the outcome of validating a definitions directory
type ValidationReport struct {
	Valid    bool               `json:"valid"`
	Entities []EntityValidation `json:"entities"`
	Enums    []EnumValidation   `json:"enums"`
	Invalid  int                `json:"invalidCount"`
}

// EntityValidation holds the entity result and one result per column
type EntityValidation struct {
	Name    string                    `json:"name"`
	Result  validation.Result         `json:"result"`
	Columns []validation.MemberResult `json:"columns"`
}

// EnumValidation holds the result of one enumeration
type EnumValidation struct {
	Name   string            `json:"name"`
	Code   string            `json:"code"`
	Values int               `json:"valueCount"`
	Result validation.Result `json:"result"`
}

// Errors folds the entity and column results into one list
func (e EntityValidation) Errors() []string {
	all := validation.Valid()
	all.Merge(e.Result)
	all.Merge(validation.Summary(e.Columns))
	return all.Errors
}

// Validate checks every entity, column and enumeration of set
func Validate(set *loader.Set) ValidationReport {
	v := validation.NewValidator(set.Registry)
	report := ValidationReport{Valid: true, Entities: []EntityValidation{}, Enums: []EnumValidation{}}

	for _, owner := range set.Entities {
		ev := EntityValidation{
			Name:    owner.Name(),
			Result:  v.Entity(owner),
			Columns: v.AllColumns(owner),
		}
		if len(ev.Errors()) > 0 {
			report.Invalid++
		}
		report.Entities = append(report.Entities, ev)
	}

	for _, ne := range set.Enums {
		ev := EnumValidation{
			Name:   ne.Name,
			Code:   ne.Enum.Code(),
			Values: len(ne.Enum.Keys()),
			Result: ne.Enum.Validate(),
		}
		if !ev.Result.IsValid {
			report.Invalid++
		}
		report.Enums = append(report.Enums, ev)
	}

	report.Valid = report.Invalid == 0
	return report
}

func newValidateCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the definitions directory",
		Long: `Validate every entity, column and enumeration in the definitions directory.

All problems are reported, not just the first one. The command exits with
an error when any definition is invalid.`,
		Example: `  # Validate ./definitions
  adb validate

  # Validate another directory and print JSON
  adb validate -d ./schema --format json`,
		Args: cobra.NoArgs,
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

			report := Validate(set)
			out := cmd.OutOrStdout()
			if format == "json" {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				renderReport(out, report, opts.noColor)
			}

			if !report.Valid {
				return fmt.Errorf("%d definition(s) failed validation", report.Invalid)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func renderReport(w io.Writer, report ValidationReport, noColor bool) {
	ui.Header(w, "Entities", noColor)
	for _, e := range report.Entities {
		renderLine(w, e.Name, fmt.Sprintf("%d columns", len(e.Columns)), e.Errors())
	}
	if len(report.Entities) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	fmt.Fprintln(w)
	ui.Header(w, "Enumerations", noColor)
	for _, e := range report.Enums {
		renderLine(w, e.Code, fmt.Sprintf("%d values", e.Values), e.Result.Errors)
	}
	if len(report.Enums) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	fmt.Fprintln(w)
	if report.Valid {
		ui.WriteSuccess(w, "All definitions are valid", noColor)
		return
	}
	fmt.Fprint(w, ui.Warning(fmt.Sprintf("%d definition(s) failed validation", report.Invalid), noColor))
}

func renderLine(w io.Writer, name, detail string, errs []string) {
	if len(errs) == 0 {
		color.New(color.FgGreen).Fprint(w, "✓ ")
		fmt.Fprintf(w, "%s (%s)\n", name, detail)
		return
	}
	color.New(color.FgRed).Fprint(w, "✗ ")
	fmt.Fprintf(w, "%s (%s)\n", name, detail)
	for i, msg := range errs {
		fmt.Fprintf(w, "   %d. %s\n", i+1, msg)
	}
}
