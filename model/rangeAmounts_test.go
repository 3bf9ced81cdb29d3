package model

import (
	"math/big"
	"testing"
)

func TestTokenAmountsZeroLiquidity(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(0)
	if err != nil {
		t.Fatal(err)
	}
	amount0, amount1, err := TokenAmounts(big.NewInt(0), sqrt, -100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if amount0.Sign() != 0 || amount1.Sign() != 0 {
		t.Fatalf("Zero liquidity should yield zero amounts, got %s / %s", amount0, amount1)
	}
}

func TestTokenAmountsBelowRange(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(-500)
	if err != nil {
		t.Fatal(err)
	}
	liq := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	amount0, amount1, err := TokenAmounts(liq, sqrt, -100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if amount1.Sign() != 0 {
		t.Fatalf("Below range should hold no token1, got %s", amount1)
	}
	if amount0.Sign() <= 0 {
		t.Fatalf("Below range should hold token0, got %s", amount0)
	}
}

func TestTokenAmountsAboveRange(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(500)
	if err != nil {
		t.Fatal(err)
	}
	liq := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	amount0, amount1, err := TokenAmounts(liq, sqrt, -100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if amount0.Sign() != 0 {
		t.Fatalf("Above range should hold no token0, got %s", amount0)
	}
	if amount1.Sign() <= 0 {
		t.Fatalf("Above range should hold token1, got %s", amount1)
	}
}

func TestTokenAmountsAtLowerBound(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(-100)
	if err != nil {
		t.Fatal(err)
	}
	liq := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	amount0, amount1, err := TokenAmounts(liq, sqrt, -100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if amount1.Sign() != 0 {
		t.Fatalf("At the lower bound all value sits in token0, got token1 %s", amount1)
	}
	if amount0.Sign() <= 0 {
		t.Fatalf("At the lower bound token0 should be positive, got %s", amount0)
	}
}

func TestTokenAmountsInRange(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(0)
	if err != nil {
		t.Fatal(err)
	}
	liq := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	amount0, amount1, err := TokenAmounts(liq, sqrt, -100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if amount0.Sign() <= 0 || amount1.Sign() <= 0 {
		t.Fatalf("In range both amounts should be positive, got %s / %s", amount0, amount1)
	}

	// Symmetric range around the current tick holds near-equal sides.
	diff := new(big.Int).Sub(amount0, amount1)
	diff.Abs(diff)
	bound := new(big.Int).Div(amount0, big.NewInt(100))
	if diff.Cmp(bound) > 0 {
		t.Fatalf("Symmetric range should split near-evenly, got %s / %s", amount0, amount1)
	}
}

func TestTokenAmountsNeverNegative(t *testing.T) {
	liq := big.NewInt(1_000_000)
	for _, tick := range []int{-2000, -100, 0, 100, 2000} {
		sqrt, err := SqrtPriceOfTick(tick)
		if err != nil {
			t.Fatal(err)
		}
		amount0, amount1, err := TokenAmounts(liq, sqrt, -100, 100)
		if err != nil {
			t.Fatalf("Tick %d errored: %v", tick, err)
		}
		if amount0.Sign() < 0 || amount1.Sign() < 0 {
			t.Fatalf("Tick %d yielded negative amounts %s / %s", tick, amount0, amount1)
		}
	}
}
