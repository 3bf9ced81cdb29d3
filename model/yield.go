package model

import (
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v2"
)

var (
	daysPerYear       = apd.New(365, 0)
	secondsPerDay     = apd.New(86400, 0)
	hundred           = apd.New(100, 0)
	fullCreditPercent = apd.New(100, 0)
)

// RewardUsdValue prices a raw reward amount and applies the token's credit
// rate. Vesting claim tokens are credited at 50% of nominal; the discount
// applies identically to per-token display values and aggregates, so it is
// folded in here.
func RewardUsdValue(raw *big.Int, decimals int, price *apd.Decimal, creditPercent int) (*apd.Decimal, error) {
	if price == nil {
		return zeroDec(), nil
	}
	adjusted, err := AdjustedAmount(raw, decimals)
	if err != nil {
		return nil, err
	}
	usd := new(apd.Decimal)
	if _, err := dctx.Mul(usd, adjusted, price); err != nil {
		return nil, err
	}
	if creditPercent != 100 {
		if _, err := dctx.Mul(usd, usd, apd.New(int64(creditPercent), 0)); err != nil {
			return nil, err
		}
		if _, err := dctx.Quo(usd, usd, fullCreditPercent); err != nil {
			return nil, err
		}
	}
	return usd, nil
}

// YieldProjection annualizes rewards accrued since the baseline capture.
type YieldProjection struct {
	DaysActive *apd.Decimal
	AprPercent *apd.Decimal
	DailyUsd   *apd.Decimal
	AnnualUsd  *apd.Decimal
}

// ProjectYield computes the annualized APR and projected earnings.
// freshBaseline marks a "(Current)" snapshot with no real elapsed history;
// it and non-positive position values zero the projection outright.
func ProjectYield(rewardsUsd, positionUsd *apd.Decimal, captured time.Time, freshBaseline bool, now time.Time) (YieldProjection, error) {
	proj := YieldProjection{
		DaysActive: zeroDec(),
		AprPercent: zeroDec(),
		DailyUsd:   zeroDec(),
		AnnualUsd:  zeroDec(),
	}
	if freshBaseline {
		return proj, nil
	}

	elapsed := now.Sub(captured)
	days := new(apd.Decimal)
	if _, err := dctx.Quo(days, apd.New(int64(elapsed.Seconds()), 0), secondsPerDay); err != nil {
		return proj, err
	}
	proj.DaysActive = days

	if positionUsd.Sign() <= 0 || days.Sign() <= 0 {
		return proj, nil
	}

	// (rewardsUsd / positionUsd) / (days / 365) * 100
	apr := new(apd.Decimal)
	if _, err := dctx.Quo(apr, rewardsUsd, positionUsd); err != nil {
		return proj, err
	}
	yearFraction := new(apd.Decimal)
	if _, err := dctx.Quo(yearFraction, days, daysPerYear); err != nil {
		return proj, err
	}
	if _, err := dctx.Quo(apr, apr, yearFraction); err != nil {
		return proj, err
	}
	if _, err := dctx.Mul(apr, apr, hundred); err != nil {
		return proj, err
	}
	proj.AprPercent = apr

	annual := new(apd.Decimal)
	if _, err := dctx.Mul(annual, positionUsd, apr); err != nil {
		return proj, err
	}
	if _, err := dctx.Quo(annual, annual, hundred); err != nil {
		return proj, err
	}
	proj.AnnualUsd = annual

	daily := new(apd.Decimal)
	if _, err := dctx.Quo(daily, annual, daysPerYear); err != nil {
		return proj, err
	}
	proj.DailyUsd = daily

	return proj, nil
}

// DailyRewardUsd is positionUsd * apr/100 / 365, the reward run rate the
// breakeven projection amortizes against.
func DailyRewardUsd(positionUsd, aprPercent *apd.Decimal) (*apd.Decimal, error) {
	if aprPercent.Sign() <= 0 {
		return zeroDec(), nil
	}
	out := new(apd.Decimal)
	if _, err := dctx.Mul(out, positionUsd, aprPercent); err != nil {
		return nil, err
	}
	if _, err := dctx.Quo(out, out, hundred); err != nil {
		return nil, err
	}
	if _, err := dctx.Quo(out, out, daysPerYear); err != nil {
		return nil, err
	}
	return out, nil
}
