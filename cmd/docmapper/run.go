package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docmapper/internal/diagnostic"
	"docmapper/internal/mapping"
	"docmapper/internal/session"
)

const (
	flagMapping     = "mapping"
	flagInput       = "input"
	flagOutput      = "output"
	flagTemplate    = "template"
	flagStrict      = "strict"
	flagStopOnError = "stop-on-error"
)

var errFieldsFailed = errors.New("some field mappings failed")

type runOptions struct {
	mapping     string
	input       string
	output      string
	template    string
	strict      bool
	stopOnError bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Map an input document into an output document",
		Example: `# Map an order file to JSON, printing the result
docmapper run -m orders.yaml -i order.xml

# Fill a template and write the result to a file
docmapper run -m orders.yaml -i order.xml --template base.xml -o out.xml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMapping(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mapping, flagMapping, "m", "", "mapping definition file")
	cmd.Flags().StringVarP(&opts.input, flagInput, "i", stdio, `input document, "-" for stdin`)
	cmd.Flags().StringVarP(&opts.output, flagOutput, "o", stdio, `output document, "-" for stdout`)
	cmd.Flags().StringVar(&opts.template, flagTemplate, "", "document to start the output from")
	cmd.Flags().BoolVar(&opts.strict, flagStrict, false, "reject target namespace aliases that are not declared")
	cmd.Flags().BoolVar(&opts.stopOnError, flagStopOnError, false, "abort at the first failed field mapping")
	_ = cmd.MarkFlagRequired(flagMapping)

	return cmd
}

func runMapping(cmd *cobra.Command, opts *runOptions) error {
	log := loggerFor(cmd)

	mf, err := loadMapping(cmd.ErrOrStderr(), opts.mapping)
	if err != nil {
		return err
	}

	cfg, err := session.ConfigFor(mf, session.Config{
		StrictNamespaces: opts.strict,
		StopOnError:      opts.stopOnError,
		Categories:       session.DefaultConfig().Categories,
	})
	if err != nil {
		return err
	}

	srcFormat := mf.Source.FormatFor(opts.input)
	dstFormat := mf.Target.FormatFor(opts.output)

	src, err := loadDocument(cmd, opts.input, srcFormat)
	if err != nil {
		return err
	}

	dst := newDocument(dstFormat)
	if opts.template != "" {
		if dst, err = loadDocument(cmd, opts.template, dstFormat); err != nil {
			return err
		}
	}

	log.V(1).Info("Mapping document",
		"input", opts.input, "sourceFormat", srcFormat,
		"output", opts.output, "targetFormat", dstFormat,
		"fields", len(mf.Fields)+len(mf.OneToOne))

	s := session.New(mf, cfg, session.WithLogger(log))

	diags, runErr := s.Process(src, nil, dst, nil)
	printDiagnostics(cmd.ErrOrStderr(), diags)

	if runErr != nil {
		return runErr
	}

	if err := writeOutput(opts.output, cmd.OutOrStdout(), dst, dstFormat); err != nil {
		return err
	}

	if diags.HasErrors() {
		return fmt.Errorf("%w: %d errors", errFieldsFailed, len(diags.Errors))
	}

	return nil
}

// loadMapping reads and validates a mapping definition. Validation
// warnings are printed; errors abort.
func loadMapping(w io.Writer, path string) (*mapping.File, error) {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res := mapping.Validate(mf)
	printDiagnostics(w, res)

	if res.HasErrors() {
		return nil, fmt.Errorf("invalid mapping %s: %d errors", path, len(res.Errors))
	}

	return mf, nil
}

// printDiagnostics writes errors and warnings, one per line.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.Errors {
		fmt.Fprintln(w, "error:", d.String())
	}

	for _, d := range diags.Warnings {
		fmt.Fprintln(w, "warning:", d.String())
	}
}
