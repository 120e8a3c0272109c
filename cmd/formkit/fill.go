package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/formkit/internal/config"
	"github.com/alexisbeaulieu97/formkit/internal/form"
	"github.com/alexisbeaulieu97/formkit/internal/logger"
	"github.com/alexisbeaulieu97/formkit/internal/termsize"
	"github.com/alexisbeaulieu97/formkit/internal/tui"
	"github.com/alexisbeaulieu97/formkit/pkg/diff"
	formerrors "github.com/alexisbeaulieu97/formkit/pkg/errors"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

type fillOptions struct {
	file    string
	sets    []string
	output  string
	noInput bool
	changes bool
}

func newFillCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively or from --set values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the form definition")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Set a field value (name=value, repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputYAML, "Output format: yaml or json")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Never prompt, even on a terminal")
	cmd.Flags().BoolVar(&opts.changes, "changes", false, "Print a diff of the values against the defaults to stderr")

	return cmd
}

// fillResult is what fill prints once the form is done.
type fillResult struct {
	Form      string              `json:"form" yaml:"form"`
	Submitted bool                `json:"submitted" yaml:"submitted"`
	Values    map[string]any      `json:"values" yaml:"values"`
	Errors    map[string][]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func runFill(cmd *cobra.Command, rootFlags *rootFlags, opts *fillOptions) error {
	log, err := newLogger(cmd, rootFlags)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	if opts.output != outputYAML && opts.output != outputJSON {
		return fmt.Errorf("unsupported output format %q (use yaml or json)", opts.output)
	}
	if err := validateDefinitionPath(opts.file); err != nil {
		return newCommandError("fill", "locating form definition", err, "Pass the definition with -f <file>.")
	}
	assignments, err := parseAssignments(opts.sets)
	if err != nil {
		return err
	}

	def, err := config.ParseDefinition(opts.file)
	if err != nil {
		return newCommandError("fill", "loading form definition", err, "Run 'formkit check -f <file>' for details.")
	}
	log = log.WithFields(map[string]any{"form": def.Name, "path": opts.file})
	log.Debug("definition loaded", map[string]any{"fields": len(def.Fields)})

	model := tui.NewModel(def, tui.WithLogger(log), tui.WithWidth(termsize.Current().Width))
	for _, a := range assignments {
		if err := model.Set(a.name, a.value); err != nil {
			log.Warn(fmt.Sprintf("rejected --set %s", a.name))
			return newCommandError("fill", "applying --set", err, "")
		}
	}

	interactive := !opts.noInput && termsize.IsTerminal(os.Stdout)
	if interactive {
		return fillInteractive(cmd, log, def, model, opts)
	}
	return fillHeadless(cmd, log, def, model, opts)
}

func fillHeadless(cmd *cobra.Command, log *logger.Logger, def *config.Definition, model *tui.Model, opts *fillOptions) error {
	submitted := model.Submit()
	result := newFillResult(def, model.Values(), model.Errors(), submitted)
	if err := finishFill(cmd, def, result, opts); err != nil {
		return err
	}
	if !submitted {
		return formerrors.NewFieldErrors(model.Errors())
	}
	log.Info("form submitted")
	return nil
}

func fillInteractive(cmd *cobra.Command, log *logger.Logger, def *config.Definition, model *tui.Model, opts *fillOptions) error {
	program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	final, err := program.Run()
	if err != nil {
		log.Error(err, "form program failed")
		return fmt.Errorf("run form: %w", err)
	}

	finished, ok := final.(*tui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	values, cancelled := finished.Result()
	if cancelled {
		return fmt.Errorf("form %s cancelled", def.Name)
	}
	return finishFill(cmd, def, newFillResult(def, values, finished.Errors(), finished.Submitted()), opts)
}

func finishFill(cmd *cobra.Command, def *config.Definition, result fillResult, opts *fillOptions) error {
	if err := writeResult(cmd.OutOrStdout(), opts.output, result); err != nil {
		return err
	}
	if !opts.changes {
		return nil
	}

	before, err := yaml.Marshal(def.Defaults())
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	after, err := yaml.Marshal(result.Values)
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	changes := diff.Unified(string(before), string(after), "defaults", "submitted")
	if changes == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No changes from defaults.")
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), changes)
	return nil
}

func newFillResult(def *config.Definition, values form.Values, errs form.Errors, submitted bool) fillResult {
	result := fillResult{
		Form:      def.Name,
		Submitted: submitted,
		Values:    make(map[string]any, len(values)),
	}
	for name, value := range values {
		if name == form.HasErrorsKey {
			continue
		}
		result.Values[name] = value
	}
	if len(errs) > 0 {
		result.Errors = make(map[string][]string, len(errs))
		for name, messages := range errs {
			result.Errors[name] = messages
		}
	}
	return result
}

func writeResult(w io.Writer, format string, result fillResult) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	default:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return encoder.Close()
	}
}
