package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/otawire/otawire/internal/doctor"
	"github.com/otawire/otawire/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().StringVar(&projectDirFlag, "project-dir", ".",
		"project root containing package.json")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose project configuration issues",
	Long: `Run read-only diagnostic checks against the project: descriptor files
present and parseable, the Xcode bundle build phase locatable, the Android
build files editable, and the git working tree state.

Nothing is modified; doctor reports what configure would find.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check the current project
  otawire doctor

  # Full report as JSON
  otawire doctor --json

See Also: otawire configure`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}
	if count > 1 {
		return errors.NewUserError(nil, "--json, --quiet, and --verbose are mutually exclusive")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	report := doctor.NewRunner(projectDirFlag).Run()

	if !doctorQuiet {
		if doctorJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return errors.Wrap(err, "marshaling report")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			printReport(cmd, report)
		}
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errors.Newf("%d check(s) failed", report.Summary.Errors), errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errors.Newf("%d warning(s)", report.Summary.Warnings), errors.ExitUser)
	default:
		return nil
	}
}

func printReport(cmd *cobra.Command, report *doctor.Report) {
	out := cmd.OutOrStdout()

	for _, r := range report.Results {
		if !doctorVerbose && (r.Status == doctor.SeverityPass || r.Status == doctor.SeverityInfo) {
			continue
		}

		var mark string
		switch r.Status {
		case doctor.SeverityPass:
			mark = color.GreenString("✓")
		case doctor.SeverityInfo:
			mark = color.CyanString("•")
		case doctor.SeverityWarning:
			mark = color.YellowString("!")
		case doctor.SeverityError:
			mark = color.RedString("✗")
		}

		fmt.Fprintf(out, "%s [%s] %s\n", mark, r.Category, r.Message)
		if r.FixHint != "" {
			fmt.Fprintf(out, "    hint: %s\n", r.FixHint)
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info,
		report.Summary.Warnings, report.Summary.Errors)
}
