// Package finmath holds the time-value-of-money primitives used by the
// projection engine. Every function is pure; rates are per-period decimals
// (0.07 for 7%) and periods are whole compounding periods.
package finmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when an input violates an arithmetic precondition.
var ErrInvalidArgument = errors.New("invalid argument")

// GrowthFactor returns (1+rate)^periods. A zero rate or zero periods yields exactly 1.
func GrowthFactor(rate float64, periods int) float64 {
	if rate == 0 || periods == 0 {
		return 1
	}
	return math.Pow(1+rate, float64(periods))
}

// FutureValue calculates the future value of a present sum: pv * (1+rate)^periods.
func FutureValue(pv, rate float64, periods int) (float64, error) {
	if pv < 0 {
		return 0, fmt.Errorf("%w: present value cannot be negative (%g)", ErrInvalidArgument, pv)
	}
	if periods < 0 {
		return 0, fmt.Errorf("%w: number of periods cannot be negative (%d)", ErrInvalidArgument, periods)
	}
	return pv * GrowthFactor(rate, periods), nil
}

// PresentValue discounts a future sum back to today: fv / (1+rate)^periods.
func PresentValue(fv, rate float64, periods int) float64 {
	return fv / GrowthFactor(rate, periods)
}

// FutureValueAnnuity returns the accumulated value of a level payment stream
// made at the end of each period.
func FutureValueAnnuity(payment, rate float64, periods int) float64 {
	if rate == 0 {
		return payment * float64(periods)
	}
	return payment * ((GrowthFactor(rate, periods) - 1) / rate)
}

// PresentValueAnnuity returns today's value of a level payment stream.
func PresentValueAnnuity(payment, rate float64, periods int) float64 {
	if rate == 0 {
		return payment * float64(periods)
	}
	return payment * (1 - math.Pow(1+rate, -float64(periods))) / rate
}

// PaymentAnnuity solves PresentValueAnnuity for the payment.
func PaymentAnnuity(pv, rate float64, periods int) (float64, error) {
	if periods <= 0 {
		return 0, fmt.Errorf("%w: payment requires at least one period (%d)", ErrInvalidArgument, periods)
	}
	if rate == 0 {
		return pv / float64(periods), nil
	}
	return pv * rate / (1 - math.Pow(1+rate, -float64(periods))), nil
}

// CompoundAnnualGrowthRate returns the constant rate that grows begin into end
// over periods. Returns 0 when begin <= 0 or periods <= 0.
func CompoundAnnualGrowthRate(begin, end, periods float64) float64 {
	if begin <= 0 || periods <= 0 {
		return 0
	}
	return math.Pow(end/begin, 1/periods) - 1
}

// RuleOf72 estimates the years needed to double at rate. Non-positive rates
// never double and return +Inf.
func RuleOf72(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return 72 / (rate * 100)
}

// InflationAdjustedValue expresses a nominal amount received after years in today's money.
func InflationAdjustedValue(amount, inflation float64, years int) float64 {
	return amount / GrowthFactor(inflation, years)
}

// RealReturnRate removes inflation from a nominal rate (Fisher equation).
func RealReturnRate(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}

// PeriodsToTarget solves the future value of an annuity for time: the number
// of periods of payment needed to accumulate shortfall at rate.
//
//	n = ln(1 + shortfall*rate/payment) / ln(1+rate)
//
// Falls back to shortfall/payment when rate <= 0. Returns 0 when the shortfall
// is already covered or no positive payment is made.
func PeriodsToTarget(shortfall, payment, rate float64) float64 {
	if shortfall <= 0 || payment <= 0 {
		return 0
	}
	if rate <= 0 {
		return shortfall / payment
	}
	return math.Log(1+shortfall*rate/payment) / math.Log(1+rate)
}
