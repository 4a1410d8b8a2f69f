package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmapper/internal/mapping"
	"docmapper/internal/match"
)

const (
	flagSource   = "source"
	flagTarget   = "target"
	flagMinScore = "min-score"
	flagMinGap   = "min-gap"
)

type suggestOptions struct {
	source string
	target string
	output string
	cfg    match.Config
}

func newSuggestCmd() *cobra.Command {
	opts := &suggestOptions{cfg: match.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Propose a mapping definition from a sample source and a target template",
		Example: `# Print a draft mapping between an order file and a JSON template
docmapper suggest -s order.xml -t order-template.json

# Write the draft to a file, accepting only close matches
docmapper suggest -s order.xml -t order-template.json --min-score 0.85 -o orders.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return suggestMapping(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, flagSource, "s", "", "sample source document")
	cmd.Flags().StringVarP(&opts.target, flagTarget, "t", "", "target template document")
	cmd.Flags().StringVarP(&opts.output, flagOutput, "o", stdio, `mapping file to write, "-" for stdout`)
	cmd.Flags().Float64Var(&opts.cfg.MinScore, flagMinScore, opts.cfg.MinScore, "lowest score a match needs")
	cmd.Flags().Float64Var(&opts.cfg.MinGap, flagMinGap, opts.cfg.MinGap, "lead a match needs over the runner-up")
	_ = cmd.MarkFlagRequired(flagSource)
	_ = cmd.MarkFlagRequired(flagTarget)

	return cmd
}

func suggestMapping(cmd *cobra.Command, opts *suggestOptions) error {
	log := loggerFor(cmd)

	srcFormat := mapping.FormatOf(opts.source)
	dstFormat := mapping.FormatOf(opts.target)

	src, err := loadDocument(cmd, opts.source, srcFormat)
	if err != nil {
		return err
	}

	dst, err := loadDocument(cmd, opts.target, dstFormat)
	if err != nil {
		return err
	}

	sources, err := match.Leaves(src)
	if err != nil {
		return err
	}

	targets, err := match.Leaves(dst)
	if err != nil {
		return err
	}

	res := match.Suggest(sources, targets, opts.cfg)

	for _, s := range res.Suggestions {
		if s.Accepted != nil {
			log.V(1).Info("Match accepted", "target", s.Target.Path.String(),
				"source", s.Accepted.Source.Path.String(), "score", s.Accepted.CombinedScore)
		}
	}

	for _, s := range res.Unresolved() {
		best := s.Candidates.Best()
		if best == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "unmatched: %s\n", s.Target.Path)
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "unmatched: %s (closest %s, score %.2f, %s)\n",
			s.Target.Path, best.Source.Path, best.CombinedScore, best.TypeCompat.Compatibility)
	}

	mf := res.Mapping(match.DocumentSpec(src, srcFormat), match.DocumentSpec(dst, dstFormat))

	if opts.output != stdio {
		return mapping.WriteFile(mf, opts.output)
	}

	data, err := mapping.Marshal(mf)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
