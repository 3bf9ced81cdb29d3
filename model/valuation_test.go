package model

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v2"
)

func TestAdjustedAmount(t *testing.T) {
	adj, err := AdjustedAmount(big.NewInt(1234500000), 8)
	if err != nil {
		t.Fatal(err)
	}
	if adj.Cmp(apd.New(12345, -3)) != 0 {
		t.Fatalf("Expected 12.345, got %s", adj.Text('f'))
	}
}

func TestPositionValueBothPriced(t *testing.T) {
	// 0.5 token0 at $50,000 plus 1,000 token1 at $1
	usd, err := PositionValueUsd(
		TokenLeg{Amount: big.NewInt(50_000_000), Decimals: 8, Price: apd.New(50000, 0)},
		TokenLeg{Amount: big.NewInt(1_000_000_000), Decimals: 6, Price: apd.New(1, 0), IsQuote: true})
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(26000, 0)) != 0 {
		t.Fatalf("Expected $26,000, got %s", usd.Text('f'))
	}
}

func TestPositionValueAnchoredFallback(t *testing.T) {
	// Priced leg is empty, so the generic sum is zero; the quote leg
	// still anchors the valuation at face value.
	usd, err := PositionValueUsd(
		TokenLeg{Amount: big.NewInt(0), Decimals: 8, Price: apd.New(50000, 0)},
		TokenLeg{Amount: big.NewInt(750_000_000), Decimals: 6, IsQuote: true})
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(750, 0)) != 0 {
		t.Fatalf("Expected $750 anchored value, got %s", usd.Text('f'))
	}
}

func TestPositionValueUnresolved(t *testing.T) {
	usd, err := PositionValueUsd(
		TokenLeg{Amount: big.NewInt(1000), Decimals: 6},
		TokenLeg{Amount: big.NewInt(1000), Decimals: 6})
	if err != nil {
		t.Fatal(err)
	}
	if !usd.IsZero() {
		t.Fatalf("Unpriced legs should value at zero, got %s", usd.Text('f'))
	}
}

func TestBaselineValueQuoteToken1(t *testing.T) {
	// 1 token0 at entry price 100 plus 50 quote tokens
	usd, err := BaselineValueUsd(apd.New(1, 0), apd.New(50, 0), apd.New(100, 0),
		false, true, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(150, 0)) != 0 {
		t.Fatalf("Expected $150, got %s", usd.Text('f'))
	}
}

func TestBaselineValueQuoteToken0(t *testing.T) {
	// Entry price is token1-per-token0, so the non-quote leg converts at
	// its inverse: 200 token1 at price 100 is worth $2.
	usd, err := BaselineValueUsd(apd.New(30, 0), apd.New(200, 0), apd.New(100, 0),
		true, false, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(32, 0)) != 0 {
		t.Fatalf("Expected $32, got %s", usd.Text('f'))
	}
}

func TestBaselineValueNoEntryPrice(t *testing.T) {
	usd, err := BaselineValueUsd(apd.New(1, 0), apd.New(50, 0), apd.New(0, 0),
		false, true, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !usd.IsZero() {
		t.Fatalf("Missing entry price should value at zero, got %s", usd.Text('f'))
	}
}

func TestBaselineValueFallbackCurrentPrices(t *testing.T) {
	// Neither leg is the quote currency; current prices stand in.
	usd, err := BaselineValueUsd(apd.New(2, 0), apd.New(3, 0), apd.New(100, 0),
		false, false, apd.New(10, 0), apd.New(5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(35, 0)) != 0 {
		t.Fatalf("Expected $35, got %s", usd.Text('f'))
	}
}
