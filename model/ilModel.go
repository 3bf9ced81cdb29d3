package model

import (
	"github.com/cockroachdb/apd/v2"
)

// ImpermanentLossPct is the relative shortfall of a unit-liquidity LP
// position versus simply holding the entry allocation, if price moves from
// entryPrice to targetPrice within (or past) [lowerPrice, upperPrice].
// Returned as a fraction (0.05 = 5%). Degenerate inputs (no price move,
// inverted range, zero HODL value) collapse to zero rather than erroring.
func ImpermanentLossPct(entryPrice, targetPrice, lowerPrice, upperPrice *apd.Decimal) (*apd.Decimal, error) {
	if targetPrice.Cmp(entryPrice) == 0 || lowerPrice.Cmp(upperPrice) >= 0 {
		return zeroDec(), nil
	}

	sqrtLower := new(apd.Decimal)
	if _, err := dctx.Sqrt(sqrtLower, lowerPrice); err != nil {
		return nil, err
	}
	sqrtUpper := new(apd.Decimal)
	if _, err := dctx.Sqrt(sqrtUpper, upperPrice); err != nil {
		return nil, err
	}

	entry0, entry1, err := unitRangeAmounts(entryPrice, lowerPrice, upperPrice, sqrtLower, sqrtUpper)
	if err != nil {
		return nil, err
	}
	target0, target1, err := unitRangeAmounts(targetPrice, lowerPrice, upperPrice, sqrtLower, sqrtUpper)
	if err != nil {
		return nil, err
	}

	hodlValue, err := valueAtPrice(entry0, entry1, targetPrice)
	if err != nil {
		return nil, err
	}
	lpValue, err := valueAtPrice(target0, target1, targetPrice)
	if err != nil {
		return nil, err
	}

	if hodlValue.IsZero() {
		return zeroDec(), nil
	}

	il := new(apd.Decimal)
	if _, err := dctx.Quo(il, lpValue, hodlValue); err != nil {
		return nil, err
	}
	if _, err := dctx.Sub(il, il, oneDec()); err != nil {
		return nil, err
	}
	il.Abs(il)
	return il, nil
}

// unitRangeAmounts is the three-region liquidity decomposition with L
// normalized to 1, in price (not sqrt-price) terms.
func unitRangeAmounts(price, lower, upper, sqrtLower, sqrtUpper *apd.Decimal) (*apd.Decimal, *apd.Decimal, error) {
	switch {
	case price.Cmp(lower) <= 0:
		amount0, err := liqTimesInverseSpan(oneDec(), sqrtLower, sqrtUpper)
		if err != nil {
			return nil, nil, err
		}
		return amount0, zeroDec(), nil
	case price.Cmp(upper) >= 0:
		amount1 := new(apd.Decimal)
		if _, err := dctx.Sub(amount1, sqrtUpper, sqrtLower); err != nil {
			return nil, nil, err
		}
		return zeroDec(), amount1, nil
	default:
		sqrtP := new(apd.Decimal)
		if _, err := dctx.Sqrt(sqrtP, price); err != nil {
			return nil, nil, err
		}
		amount0, err := liqTimesInverseSpan(oneDec(), sqrtP, sqrtUpper)
		if err != nil {
			return nil, nil, err
		}
		amount1 := new(apd.Decimal)
		if _, err := dctx.Sub(amount1, sqrtP, sqrtLower); err != nil {
			return nil, nil, err
		}
		return amount0, amount1, nil
	}
}

// valueAtPrice is amount0*price + amount1, the pair value in token1 terms.
func valueAtPrice(amount0, amount1, price *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := dctx.Mul(out, amount0, price); err != nil {
		return nil, err
	}
	if _, err := dctx.Add(out, out, amount1); err != nil {
		return nil, err
	}
	return out, nil
}
