package model

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// TokenAmounts decomposes position liquidity over [tickLower, tickUpper] at
// the current sqrt price into the underlying raw token amounts. Boundary
// comparisons are inclusive toward the out-of-range cases and results are
// floored to integers.
func TokenAmounts(liquidity *big.Int, currentSqrtPrice *apd.Decimal, tickLower int, tickUpper int) (*big.Int, *big.Int, error) {
	if liquidity.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0), nil
	}

	sqrtLower, err := SqrtPriceOfTick(tickLower)
	if err != nil {
		return nil, nil, err
	}
	sqrtUpper, err := SqrtPriceOfTick(tickUpper)
	if err != nil {
		return nil, nil, err
	}

	liq := DecFromBigInt(liquidity)
	amount0 := zeroDec()
	amount1 := zeroDec()

	switch {
	case currentSqrtPrice.Cmp(sqrtLower) <= 0:
		// Entirely in token0: L * (upper-lower)/(lower*upper)
		amount0, err = liqTimesInverseSpan(liq, sqrtLower, sqrtUpper)
		if err != nil {
			return nil, nil, err
		}
	case currentSqrtPrice.Cmp(sqrtUpper) >= 0:
		// Entirely in token1: L * (upper-lower)
		span := new(apd.Decimal)
		if _, err := dctx.Sub(span, sqrtUpper, sqrtLower); err != nil {
			return nil, nil, err
		}
		if _, err := dctx.Mul(amount1, liq, span); err != nil {
			return nil, nil, err
		}
	default:
		amount0, err = liqTimesInverseSpan(liq, currentSqrtPrice, sqrtUpper)
		if err != nil {
			return nil, nil, err
		}
		span := new(apd.Decimal)
		if _, err := dctx.Sub(span, currentSqrtPrice, sqrtLower); err != nil {
			return nil, nil, err
		}
		if _, err := dctx.Mul(amount1, liq, span); err != nil {
			return nil, nil, err
		}
	}

	raw0, err := truncToBigInt(amount0)
	if err != nil {
		return nil, nil, err
	}
	raw1, err := truncToBigInt(amount1)
	if err != nil {
		return nil, nil, err
	}
	return raw0, raw1, nil
}

// liqTimesInverseSpan is L * (upper-from)/(from*upper), the token0 side of
// the decomposition.
func liqTimesInverseSpan(liq *apd.Decimal, from *apd.Decimal, upper *apd.Decimal) (*apd.Decimal, error) {
	span := new(apd.Decimal)
	if _, err := dctx.Sub(span, upper, from); err != nil {
		return nil, err
	}
	denom := new(apd.Decimal)
	if _, err := dctx.Mul(denom, from, upper); err != nil {
		return nil, err
	}
	out := new(apd.Decimal)
	if _, err := dctx.Quo(out, span, denom); err != nil {
		return nil, err
	}
	if _, err := dctx.Mul(out, liq, out); err != nil {
		return nil, err
	}
	return out, nil
}
