package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/formkit/internal/config"
	"github.com/alexisbeaulieu97/formkit/pkg/textutil"
)

type checkOptions struct {
	file string
}

func newCheckCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a form definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the form definition")

	return cmd
}

func runCheck(cmd *cobra.Command, rootFlags *rootFlags, opts *checkOptions) error {
	log, err := newLogger(cmd, rootFlags)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	if err := validateDefinitionPath(opts.file); err != nil {
		return newCommandError("check", "locating form definition", err, "Pass the definition with -f <file>.")
	}

	def, err := config.ParseDefinition(opts.file)
	if err != nil {
		return newCommandError("check", "validating form definition", err, "")
	}
	log.Debug("definition loaded", map[string]any{"path": opts.file, "fields": len(def.Fields)})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d %s\n", def.Name, len(def.Fields), textutil.Pluralize("field", len(def.Fields)))

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tKIND\tRULES\tDEBOUNCE")
	for _, field := range def.Fields {
		fmt.Fprintf(writer, "%s\t%s\t%d\t%t\n", field.Name, field.EffectiveKind(), len(field.Rules), field.Debounce)
	}
	return writer.Flush()
}
