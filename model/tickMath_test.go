package model

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v2"
)

// decsClose compares at a relative tolerance of 1e-30, far tighter than
// any display rounding.
func decsClose(t *testing.T, got, want *apd.Decimal) {
	t.Helper()
	diff := new(apd.Decimal)
	if _, err := dctx.Sub(diff, got, want); err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if diff.IsZero() {
		return
	}
	rel := new(apd.Decimal)
	if _, err := dctx.Quo(rel, diff, want); err != nil {
		t.Fatalf("ratio failed: %v", err)
	}
	rel.Abs(rel)
	if rel.Cmp(apd.New(1, -30)) > 0 {
		t.Fatalf("Not close enough: got %s want %s", got.Text('f'), want.Text('f'))
	}
}

func TestPriceOfTickZero(t *testing.T) {
	price, err := PriceOfTick(0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if price.Cmp(apd.New(1, 0)) != 0 {
		t.Fatalf("Tick 0 with equal decimals should price at 1, got %s", price.Text('f'))
	}
}

func TestPriceOfTickDecimalAdjust(t *testing.T) {
	price, err := PriceOfTick(0, 6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if price.Cmp(apd.New(1, -2)) != 0 {
		t.Fatalf("Tick 0 with 6/8 decimals should price at 0.01, got %s", price.Text('f'))
	}
}

func TestPriceOfTickMonotone(t *testing.T) {
	low, err := PriceOfTick(0, 18, 18)
	if err != nil {
		t.Fatal(err)
	}
	high, err := PriceOfTick(100, 18, 18)
	if err != nil {
		t.Fatal(err)
	}
	if high.Cmp(low) <= 0 {
		t.Fatalf("Price not increasing in tick: %s <= %s", high.Text('f'), low.Text('f'))
	}
}

func TestPriceOfTickExtremes(t *testing.T) {
	for _, tick := range []int{MinTick, MaxTick} {
		price, err := PriceOfTick(tick, 18, 18)
		if err != nil {
			t.Fatalf("Tick %d errored: %v", tick, err)
		}
		if !isFinite(price) || price.Sign() <= 0 {
			t.Fatalf("Tick %d should yield a finite positive price, got %s", tick, price.String())
		}
	}
}

func TestSqrtPriceConsistency(t *testing.T) {
	sqrt, err := SqrtPriceOfTick(200)
	if err != nil {
		t.Fatal(err)
	}
	squared := new(apd.Decimal)
	if _, err := dctx.Mul(squared, sqrt, sqrt); err != nil {
		t.Fatal(err)
	}
	price, err := PriceOfTick(200, 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	decsClose(t, squared, price)
}

func TestPriceOfSqrtX96(t *testing.T) {
	// raw = 2 * 2^96 encodes sqrt price 2, so price 4
	raw := new(big.Int).Lsh(big.NewInt(2), 96)
	price, err := PriceOfSqrtX96(raw, 18, 18)
	if err != nil {
		t.Fatal(err)
	}
	if price.Cmp(apd.New(4, 0)) != 0 {
		t.Fatalf("Expected price 4, got %s", price.Text('f'))
	}
}

func TestSqrtPriceOfX96DecimalScale(t *testing.T) {
	raw := new(big.Int).Lsh(big.NewInt(3), 96)
	sqrt, err := SqrtPriceOfX96(raw)
	if err != nil {
		t.Fatal(err)
	}
	if sqrt.Cmp(apd.New(3, 0)) != 0 {
		t.Fatalf("Expected sqrt price 3, got %s", sqrt.Text('f'))
	}
}
