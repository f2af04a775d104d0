package calculation

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/firefly/retirement-planner/internal/domain"
	"github.com/firefly/retirement-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// samplePlaces is the precision kept from each sampled return.
const samplePlaces = 6

// defaultWorkers limits concurrent simulations.
const defaultWorkers = 10

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations  int
	Volatility      decimal.Decimal // standard deviation of the annual return
	Seed            int64           // 0 draws a fresh seed
	FullHorizon     bool            // continue every trial through the withdrawal phase
	WithdrawalYears int             // full-horizon length; 0 uses the engine's assumption
	Workers         int
}

// DefaultMonteCarloConfig returns a config built from the engine's assumptions
func (ce *CalculationEngine) DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: ce.Assumptions.MonteCarloSimulations,
		Volatility:     ce.Assumptions.MarketVolatility,
	}
}

// RunMonteCarlo replays the accumulation phase NumSimulations times with a
// normally distributed annual return (mean = the plan's return rate). A trial
// succeeds when it reaches the plan's required portfolio. Each trial draws
// from its own generator seeded from (Seed, trial index), so results do not
// depend on how trials are scheduled.
func (ce *CalculationEngine) RunMonteCarlo(profile domain.FinancialProfile, plan domain.RetirementPlan, config MonteCarloConfig) (*domain.MonteCarloResults, error) {
	if config.NumSimulations <= 0 {
		return nil, fmt.Errorf("%w: number of simulations must be positive (%d)", finmath.ErrInvalidArgument, config.NumSimulations)
	}
	if config.Volatility.IsNegative() {
		return nil, fmt.Errorf("%w: volatility cannot be negative (%s)", finmath.ErrInvalidArgument, config.Volatility)
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	t := ce.newTrialRunner(profile, plan, config)
	ce.Logger.Debugf("monte carlo: %d simulations over %d years, seed %d", config.NumSimulations, t.years, config.Seed)

	outcomes := make([]domain.SimulationOutcome, config.NumSimulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i := 0; i < config.NumSimulations; i++ {
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			outcomes[simIndex] = t.run(simIndex, rand.New(rand.NewSource(trialSeed(config.Seed, simIndex))))
		}(i)
	}
	wg.Wait()

	return summarizeOutcomes(outcomes, t.required, config), nil
}

// trialRunner holds the per-run inputs shared read-only by every trial.
type trialRunner struct {
	years           int
	withdrawalYears int
	fullHorizon     bool

	assets       decimal.Decimal
	contribution decimal.Decimal
	incomeGrowth decimal.Decimal
	required     decimal.Decimal
	need         decimal.Decimal
	inflation    decimal.Decimal

	mean       float64
	volatility float64
}

func (ce *CalculationEngine) newTrialRunner(profile domain.FinancialProfile, plan domain.RetirementPlan, config MonteCarloConfig) *trialRunner {
	years := plan.YearsToRetirement(profile)
	if years < 0 {
		years = 0
	}
	return &trialRunner{
		years:           years,
		withdrawalYears: ce.withdrawalYears(config.WithdrawalYears),
		fullHorizon:     config.FullHorizon,
		assets:          profile.TotalAssets(),
		contribution:    profile.AnnualSavings(),
		incomeGrowth:    one.Add(profile.IncomeGrowthRate),
		required:        plan.RequiredPortfolioValue(profile),
		need:            initialWithdrawalNeed(profile, plan),
		inflation:       one.Add(plan.InflationRate),
		mean:            plan.ReturnRate.InexactFloat64(),
		volatility:      config.Volatility.InexactFloat64(),
	}
}

func (t *trialRunner) sample(rng *rand.Rand) decimal.Decimal {
	return decimal.NewFromFloat(t.mean + t.volatility*rng.NormFloat64()).Round(samplePlaces)
}

// run executes one trial. The accumulation step and contribution growth are
// the deterministic projector's, with the sampled rate in place of the plan's.
func (t *trialRunner) run(trial int, rng *rand.Rand) domain.SimulationOutcome {
	portfolio := t.assets
	contribution := t.contribution
	for y := 0; y < t.years; y++ {
		portfolio, _ = accumulateYear(portfolio, contribution, t.sample(rng))
		if y > 0 {
			contribution = contribution.Mul(t.incomeGrowth).Round(statePlaces)
		}
	}

	outcome := domain.SimulationOutcome{
		Trial:         trial,
		EndingBalance: portfolio,
		Success:       portfolio.GreaterThanOrEqual(t.required),
	}
	if !t.fullHorizon {
		return outcome
	}

	need := t.need
	outcome.Survived = true
	outcome.YearsFunded = t.withdrawalYears
	for w := 0; w < t.withdrawalYears; w++ {
		portfolio, _ = withdrawYear(portfolio, need, t.sample(rng))
		need = need.Mul(t.inflation).Round(statePlaces)
		if !portfolio.IsPositive() {
			outcome.Survived = false
			outcome.YearsFunded = w
			break
		}
	}
	return outcome
}

func summarizeOutcomes(outcomes []domain.SimulationOutcome, required decimal.Decimal, config MonteCarloConfig) *domain.MonteCarloResults {
	n := len(outcomes)
	balances := make([]decimal.Decimal, n)
	successes, survivors := 0, 0
	funded := make([]int, n)
	for i, o := range outcomes {
		balances[i] = o.EndingBalance
		funded[i] = o.YearsFunded
		if o.Success {
			successes++
		}
		if o.Survived {
			survivors++
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })

	at := func(pct int) decimal.Decimal { return balances[finmath.PercentileIndex(n, pct)] }
	total := decimal.NewFromInt(int64(n))
	results := &domain.MonteCarloResults{
		Outcomes:       outcomes,
		EndingBalances: balances,
		SuccessRate:    decimal.NewFromInt(int64(successes)).Div(total),
		PercentileRanges: domain.PercentileRanges{
			P10: at(10),
			P25: at(25),
			P50: at(50),
			P75: at(75),
			P90: at(90),
		},
		RequiredPortfolioValue: required,
		NumSimulations:         n,
		Seed:                   config.Seed,
		FullHorizon:            config.FullHorizon,
	}
	results.MedianEndingBalance = results.PercentileRanges.P50

	if config.FullHorizon {
		sort.Ints(funded)
		results.SurvivalRate = decimal.NewFromInt(int64(survivors)).Div(total)
		results.MedianYearsFunded = funded[finmath.PercentileIndex(n, 50)]
	}
	return results
}

// MeetsSuccessThreshold reports whether a run clears the configured success rate.
func (ce *CalculationEngine) MeetsSuccessThreshold(results *domain.MonteCarloResults) bool {
	return results != nil && results.SuccessRate.GreaterThanOrEqual(ce.Assumptions.MonteCarloSuccessThreshold)
}
