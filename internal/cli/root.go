package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/h2hpxml/internal/translate"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // optional YAML config file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the h2hpxml CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "h2hpxml",
		Short: "h2hpxml - HOT2000 to HPXML translator",
		Long:  "Translates HOT2000 building-energy-model files into HPXML documents for downstream simulation engines.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the run configuration: defaults, overridden by the
// --config file when one is named.
func loadConfig(opts *RootOptions) (translate.Config, error) {
	if opts.ConfigPath == "" {
		return translate.DefaultConfig(), nil
	}
	f, err := os.Open(opts.ConfigPath)
	if err != nil {
		return translate.Config{}, WrapExitError(ExitCommandError, "open config", err)
	}
	defer f.Close()
	cfg, err := translate.ParseConfig(f)
	if err != nil {
		return translate.Config{}, WrapExitError(ExitCommandError, "load config", err)
	}
	return cfg, nil
}
