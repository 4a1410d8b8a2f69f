// Package main provides the CLI entrypoint for docmapper.
//
// docmapper copies fields between structured documents as described by a
// YAML mapping definition:
//   - run: map one input document into a new or templated output document
//   - check: validate a mapping definition without touching documents
//   - paths: parse path expressions and print their canonical form
//   - suggest: draft a mapping definition from two sample documents
package main

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const flagVerbose = "verbose"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docmapper",
		Short:         "Map fields between XML, JSON and YAML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP(flagVerbose, "v", false, "log every written field to stderr")

	cmd.AddCommand(newRunCmd(), newCheckCmd(), newPathsCmd(), newSuggestCmd())

	return cmd
}

// newLogger builds a logr.Logger on top of zap. Without verbose output the
// logger discards everything.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	if !verbose {
		return logr.Discard()
	}

	sink := zapcore.AddSync(w)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	// logr V(1) maps to zap level -1.
	lvl := zap.NewAtomicLevelAt(zapcore.Level(-1))

	zlog := zap.New(zapcore.NewCore(enc, sink, lvl), zap.ErrorOutput(sink))

	return zapr.NewLogger(zlog)
}

func loggerFor(cmd *cobra.Command) logr.Logger {
	verbose, _ := cmd.Flags().GetBool(flagVerbose)
	return newLogger(cmd.ErrOrStderr(), verbose)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
