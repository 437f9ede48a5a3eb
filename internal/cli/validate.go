package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/h2hpxml/internal/conformance"
)

// ValidationResult holds conformance results for JSON output.
type ValidationResult struct {
	Valid  bool                `json:"valid"`
	Errors []conformance.Issue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <doc.xml>",
		Short: "Validate an HPXML document against the schema subset",
		Long: `Check an HPXML document against the translator's schema subset.

Covers required structure, enumerated values, numeric ranges,
SystemIdentifier pattern and uniqueness, and idref closure. Works on
any document, not just ones this tool produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateDoc(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidateDoc(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return WrapExitError(ExitCommandError, "read document", err)
	}

	formatter.VerboseLog("validating %s (%d bytes)", path, len(data))

	res := conformance.Validate(data)
	if !res.Valid {
		return outputIssues(formatter, res)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ document conforms")
	return nil
}

// outputIssues prints conformance failures and returns the validation
// exit code.
func outputIssues(formatter *OutputFormatter, res conformance.Result) error {
	if formatter.Format == "json" {
		_ = formatter.Error("E600", "validation failed", ValidationResult{
			Valid:  false,
			Errors: res.Errors,
		})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(res.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "✗ validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range res.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", issue)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(res.Errors)))
}
