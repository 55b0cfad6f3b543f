// Package cli implements the audit-preview command, which runs a single
// submission through the pipeline from the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"brandaudit/internal/app"
	"brandaudit/internal/config"
	"brandaudit/internal/knowledge"
	"brandaudit/internal/logger"
	"brandaudit/internal/model"
	"brandaudit/internal/quality"
	"brandaudit/internal/service"
)

// Submission is the YAML form of an audit submission
type Submission struct {
	Score       *float64 `yaml:"score"`
	Answers     []string `yaml:"answers"`
	UserName    string   `yaml:"userName"`
	BrandName   string   `yaml:"brandName"`
	UserSegment string   `yaml:"userSegment"`
}

func (s Submission) request() model.AnalyzeRequest {
	return model.AnalyzeRequest{
		Score:       s.Score,
		Answers:     s.Answers,
		UserName:    s.UserName,
		BrandName:   s.BrandName,
		UserSegment: s.UserSegment,
	}
}

type previewOptions struct {
	file          string
	configPath    string
	table         string
	preset        string
	peerReviewMin int
	knowledgePath string
	generate      bool
	hideDirective bool
}

// NewRootCommand creates the audit-preview command
func NewRootCommand() *cobra.Command {
	opts := &previewOptions{peerReviewMin: -1}

	cmd := &cobra.Command{
		Use:   "audit-preview <submission.yaml>",
		Short: "Show how a brand audit submission would be judged",
		Long: `Run one submission through answer classification, tier selection and
prompt assembly, printing every intermediate result:
  - per-answer assessment
  - the accept/reject verdict
  - the selected tier and prompt layout
  - the assembled directive

With --generate the directive is also sent to the configured backend.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			return runPreview(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (defaults to configs/config.yaml)")
	f.StringVar(&opts.table, "table", "", "tier table: six-band or three-band")
	f.StringVar(&opts.preset, "quality", "", "quality preset: strict or lenient")
	f.IntVar(&opts.peerReviewMin, "peer-review-min", -1, "minimum score for the peer-review layout, 0 disables")
	f.StringVarP(&opts.knowledgePath, "knowledge", "k", "", "knowledge base file")
	f.BoolVarP(&opts.generate, "generate", "g", false, "call the generation backend")
	f.BoolVar(&opts.hideDirective, "no-directive", false, "do not print the assembled directive")

	return cmd
}

func runPreview(ctx context.Context, out io.Writer, opts *previewOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sub, err := readSubmission(opts.file)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log := logger.NewNoOpLogger()
	kb := knowledge.LoadOrPlaceholder(knowledge.FileLoader{Path: cfg.Knowledge.Path}, cfg.Knowledge.Placeholder, log)
	gen, genName := app.NewGenerator(cfg.GenAI, log)

	svc, err := app.NewAnalysisService(cfg, kb, gen, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	p, err := svc.Preview(ctx, sub.request())
	if err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}

	if kb.Degraded {
		color.New(color.FgYellow).Fprintf(out, "Knowledge base unavailable (%s), using placeholder\n\n", kb.Source)
	}
	printPreview(out, p, !opts.hideDirective)

	if p.Verdict.Rejected || !opts.generate {
		return nil
	}

	fmt.Fprintf(out, "\nGenerating with %s backend...\n\n", genName)
	result, err := svc.Analyze(ctx, sub.request())
	if err != nil {
		return fmt.Errorf("generate analysis: %w", err)
	}
	fmt.Fprintln(out, result.Analysis)
	return nil
}

func readSubmission(path string) (Submission, error) {
	var sub Submission
	data, err := os.ReadFile(path)
	if err != nil {
		return sub, fmt.Errorf("read submission: %w", err)
	}
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return sub, fmt.Errorf("parse submission %s: %w", path, err)
	}
	return sub, nil
}

func loadConfig(opts *previewOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.table != "" {
		cfg.Tiers.Table = opts.table
	}
	if opts.preset != "" {
		cfg.Quality.Preset = opts.preset
	}
	if opts.peerReviewMin >= 0 {
		cfg.Prompt.PeerReviewMinScore = opts.peerReviewMin
	}
	if opts.knowledgePath != "" {
		cfg.Knowledge.Path = opts.knowledgePath
	}
	return cfg, nil
}

func printPreview(out io.Writer, p service.Preview, showDirective bool) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	bold.Fprintf(out, "Submission: score %d/%d", p.Survey.Score, model.MaxScore)
	if p.Survey.Segment != model.SegmentNone {
		fmt.Fprintf(out, ", segment %s", p.Survey.Segment)
	}
	fmt.Fprintln(out)

	bold.Fprintln(out, "\nAnswers:")
	for i, a := range p.Assessments {
		c := green
		switch {
		case a.Kind == quality.KindEmpty:
			c = red
		case a.Kind.Suspicious():
			c = yellow
		}
		c.Fprintf(out, "  %d. %-14s", i+1, a.Kind)
		fmt.Fprintf(out, " len=%-4d weight=%.1f\n", a.Length, a.Weight)
	}

	v := p.Verdict
	bold.Fprint(out, "\nVerdict: ")
	if v.Rejected {
		red.Fprintln(out, "REJECTED")
	} else {
		green.Fprintln(out, "ACCEPTED")
	}
	fmt.Fprintf(out, "  total length:     %d\n", v.TotalLength)
	fmt.Fprintf(out, "  suspicious count: %d\n", v.SuspiciousCount)
	fmt.Fprintf(out, "  valid weight:     %.1f\n", v.ValidWeight)

	fmt.Fprintf(out, "\nTier: %s (%s)\n", p.Band.Name, p.Band.Label)

	if v.Rejected {
		fmt.Fprintf(out, "\nResponse:\n%s\n", service.RebuffText)
		return
	}
	fmt.Fprintf(out, "Layout: %s\n", p.Directive.Strategy)
	fmt.Fprintf(out, "Directive: %d bytes\n", len(p.Directive.Text))
	if showDirective {
		bold.Fprintln(out, "\n--- directive ---")
		fmt.Fprintln(out, p.Directive.Text)
	}
}
