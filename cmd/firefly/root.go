package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/firefly/retirement-planner/internal/calculation"
	"github.com/firefly/retirement-planner/internal/config"
	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	configFile      string
	assumptionsFile string
	format          string
	outputDir       string
	debug           bool

	seed        int64
	simulations int
	volatility  string
	fullHorizon bool
}

// session is a loaded configuration plus an engine built from the effective assumptions.
type session struct {
	config *domain.Configuration
	engine *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "firefly",
		Short:         "Retirement projection, Monte Carlo and scenario analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configFile, "config", "c", "", "profile/plan YAML file (defaults to the built-in example)")
	f.StringVar(&opts.assumptionsFile, "assumptions", "", "YAML file overriding the default assumptions")
	f.StringVarP(&opts.format, "format", "f", "console", "output format: "+formatHelp())
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "write the report to a timestamped file in this directory")
	f.BoolVar(&opts.debug, "debug", false, "log calculation details to stderr")
	f.Int64Var(&opts.seed, "seed", 0, "Monte Carlo seed (0 draws a fresh one)")
	f.IntVar(&opts.simulations, "simulations", 0, "Monte Carlo trial count (0 uses the assumptions)")
	f.StringVar(&opts.volatility, "volatility", "", "annual return volatility, e.g. 0.15 (defaults to the portfolio's or the assumptions')")
	f.BoolVar(&opts.fullHorizon, "full-horizon", false, "continue Monte Carlo trials through the withdrawal phase")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newProjectCmd(opts),
		newWithdrawCmd(opts),
		newMonteCarloCmd(opts),
		newFIRECmd(opts),
		newScenariosCmd(opts),
		newSweepCmd(opts),
		newExampleCmd(opts),
	)
	return root
}

func formatHelp() string {
	return strings.Join(output.AvailableFormatterNames(), ", ")
}

func (o *options) load(stderr io.Writer) (*session, error) {
	assumptions, err := config.LoadAssumptions(o.assumptionsFile)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewCalculationEngineWithAssumptions(assumptions)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(calculation.NewStdLogger(stderr, o.debug))

	parser := config.NewInputParserWithAssumptions(assumptions)
	var cfg *domain.Configuration
	if o.configFile == "" {
		cfg = parser.CreateExampleConfiguration()
	} else {
		cfg, err = parser.LoadFromFile(o.configFile)
		if err != nil {
			return nil, err
		}
	}
	return &session{config: cfg, engine: engine}, nil
}

// monteCarloConfig layers the flags over the engine defaults.
func (o *options) monteCarloConfig(s *session) (calculation.MonteCarloConfig, error) {
	mc := s.engine.DefaultMonteCarloConfig()
	if o.simulations > 0 {
		mc.NumSimulations = o.simulations
	}
	mc.Seed = o.seed
	mc.FullHorizon = o.fullHorizon
	switch {
	case o.volatility != "":
		v, err := decimal.NewFromString(o.volatility)
		if err != nil {
			return mc, fmt.Errorf("invalid --volatility %q: %w", o.volatility, err)
		}
		mc.Volatility = v
	case s.config.Portfolio != nil && s.config.Portfolio.TotalValue().IsPositive():
		mc.Volatility = s.config.Portfolio.WeightedVolatility()
	}
	return mc, nil
}

// emit renders report to stdout, or to a file when --output-dir is set.
func (o *options) emit(cmd *cobra.Command, report *output.Report) error {
	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		name, err := output.GenerateReport(report, o.format, o.outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		return nil
	}
	b, err := output.Render(report, o.format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func readiness(profile domain.FinancialProfile, plan domain.RetirementPlan) *output.Readiness {
	return &output.Readiness{
		Score:                  plan.ReadinessScore(profile),
		RequiredMonthlySavings: plan.RequiredMonthlySavings(profile),
		OnTrack:                plan.IsOnTrack(profile),
	}
}

func baseReport(title string, s *session) *output.Report {
	return &output.Report{
		Title:       title,
		Profile:     &s.config.Profile,
		Plan:        &s.config.Plan,
		Portfolio:   s.config.Portfolio,
		Readiness:   readiness(s.config.Profile, s.config.Plan),
		Assumptions: s.engine.Assumptions.Summary(),
	}
}
