package model

import (
	"fmt"

	"github.com/cockroachdb/apd/v2"
)

// BoundProjection is the IL/breakeven outlook if price reaches one bound of
// the range.
type BoundProjection struct {
	Price             *apd.Decimal
	ILPercent         *apd.Decimal // fraction, not scaled by 100
	ILUsd             *apd.Decimal
	DaysToBreakeven   *apd.Decimal // 0 means "not applicable"
	TimeRemaining     *apd.Decimal
	CompletionPercent *apd.Decimal // -1 sentinel when not finite
	FeesMinusIl       *apd.Decimal
	Display           string
}

// ProjectBound estimates how long accrued rewards take to offset the IL
// realized if price reaches boundPrice. entryAdj0/entryAdj1 are the
// baseline amounts in whole tokens.
func ProjectBound(entryPrice, boundPrice, lowerPrice, upperPrice,
	entryAdj0, entryAdj1, rewardsUsd, dailyRewardUsd, daysActive *apd.Decimal) (BoundProjection, error) {

	out := BoundProjection{Price: boundPrice}

	ilPct, err := ImpermanentLossPct(entryPrice, boundPrice, lowerPrice, upperPrice)
	if err != nil {
		return out, err
	}
	out.ILPercent = ilPct

	hodlValue, err := valueAtPrice(entryAdj0, entryAdj1, boundPrice)
	if err != nil {
		return out, err
	}
	ilUsd := new(apd.Decimal)
	if _, err := dctx.Mul(ilUsd, ilPct, hodlValue); err != nil {
		return out, err
	}
	out.ILUsd = ilUsd

	days := zeroDec()
	if dailyRewardUsd.Sign() > 0 && ilUsd.Sign() > 0 {
		if _, err := dctx.Quo(days, ilUsd, dailyRewardUsd); err != nil {
			return out, err
		}
	}
	out.DaysToBreakeven = days

	remaining := new(apd.Decimal)
	if _, err := dctx.Sub(remaining, days, daysActive); err != nil {
		return out, err
	}
	out.TimeRemaining = remaining

	completion := zeroDec()
	if days.Sign() > 0 {
		if isFinite(remaining) {
			if _, err := dctx.Quo(completion, remaining, days); err != nil {
				return out, err
			}
			if _, err := dctx.Mul(completion, completion, hundred); err != nil {
				return out, err
			}
		} else {
			completion = apd.New(-1, 0)
		}
	}
	out.CompletionPercent = completion

	fees := new(apd.Decimal)
	if _, err := dctx.Sub(fees, rewardsUsd, ilUsd); err != nil {
		return out, err
	}
	out.FeesMinusIl = fees

	out.Display = breakevenDisplay(days, remaining)
	return out, nil
}

// breakevenDisplay renders "N/A" when breakeven does not apply, otherwise
// the total span plus remaining time, or "(Met)" once remaining runs out.
func breakevenDisplay(daysToBreakeven, timeRemaining *apd.Decimal) string {
	if daysToBreakeven.Sign() <= 0 {
		return "N/A"
	}
	total := FormatDaySpan(daysToBreakeven)
	remaining := FormatDaySpan(timeRemaining)
	if remaining == "Met" {
		return fmt.Sprintf("%s (Met)", total)
	}
	return fmt.Sprintf("%s (%s left)", total, remaining)
}

// CurrentIL is the realized IL at the current price, against accrued
// rewards.
type CurrentIL struct {
	ILPercent   *apd.Decimal
	ILUsd       *apd.Decimal
	NetGainLoss *apd.Decimal // rewardsUsd - ILUsd
}

// ProjectCurrent computes IL at the current price rather than a bound, and
// the resulting net gain/loss.
func ProjectCurrent(entryPrice, currentPrice, lowerPrice, upperPrice,
	entryAdj0, entryAdj1, rewardsUsd *apd.Decimal) (CurrentIL, error) {

	out := CurrentIL{}

	ilPct, err := ImpermanentLossPct(entryPrice, currentPrice, lowerPrice, upperPrice)
	if err != nil {
		return out, err
	}
	out.ILPercent = ilPct

	hodlValue, err := valueAtPrice(entryAdj0, entryAdj1, currentPrice)
	if err != nil {
		return out, err
	}
	ilUsd := new(apd.Decimal)
	if _, err := dctx.Mul(ilUsd, ilPct, hodlValue); err != nil {
		return out, err
	}
	out.ILUsd = ilUsd

	net := new(apd.Decimal)
	if _, err := dctx.Sub(net, rewardsUsd, ilUsd); err != nil {
		return out, err
	}
	out.NetGainLoss = net

	return out, nil
}
