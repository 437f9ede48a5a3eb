package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/h2hpxml/internal/conformance"
	"github.com/roach88/h2hpxml/internal/source"
	"github.com/roach88/h2hpxml/internal/translate"
)

// TranslateResult is the JSON payload of a successful translation.
type TranslateResult struct {
	Input    string   `json:"input"`
	Output   string   `json:"output"`
	RunToken string   `json:"run_token"`
	Warnings []string `json:"warnings,omitempty"`
	Valid    *bool    `json:"valid,omitempty"` // set only with --validate
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		outputPath  string
		validateOut bool
	)

	cmd := &cobra.Command{
		Use:   "translate <input.h2k>",
		Short: "Translate one HOT2000 file to HPXML",
		Long: `Translate a HOT2000 (.h2k) file into an HPXML document.

The output path defaults to the input path with an .xml extension.
With --validate the emitted document is also checked against the
HPXML schema subset and conformance failures fail the command.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, args[0], outputPath, validateOut, cmd)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: input with .xml extension)")
	cmd.Flags().BoolVar(&validateOut, "validate", false, "validate the emitted document")

	return cmd
}

func runTranslate(opts *RootOptions, input, output string, validateOut bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return err
	}

	if output == "" {
		output = defaultOutputPath(input)
	}

	out, err := translateFile(input, cfg)
	if err != nil {
		code := ErrorCode(err)
		_ = formatter.Error(code, err.Error(), nil)
		if _, statErr := os.Stat(input); statErr != nil {
			return WrapExitError(ExitCommandError, "read input", err)
		}
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	for _, w := range out.Warnings {
		formatter.VerboseLog("warning [%s] %s (%s)", w.Severity, w.Message, w.Context)
	}

	result := TranslateResult{
		Input:    input,
		Output:   output,
		RunToken: out.RunToken,
	}
	for _, w := range out.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	if validateOut {
		res := conformance.Validate(out.Document)
		result.Valid = &res.Valid
		if !res.Valid {
			return outputIssues(formatter, res)
		}
	}

	if err := os.WriteFile(output, out.Document, 0o644); err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ wrote %s (%d warnings)\n", output, len(out.Warnings))
	return nil
}

// translateFile reads, parses, and translates one document.
func translateFile(path string, cfg translate.Config) (*translate.Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	doc, err := source.Parse(f)
	if err != nil {
		return nil, err
	}
	return translate.Translate(doc, cfg)
}

// defaultOutputPath swaps the input's extension for .xml.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".xml"
}
