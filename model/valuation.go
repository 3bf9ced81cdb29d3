package model

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// TokenLeg is one side of a position, ready for USD valuation. A nil Price
// marks the leg's quote as unresolved; it then contributes nothing unless
// the stablecoin-anchored path applies.
type TokenLeg struct {
	Amount   *big.Int
	Decimals int
	Price    *apd.Decimal
	IsQuote  bool
}

// Resolved reports whether the leg can contribute to a valuation at all.
func (l TokenLeg) Resolved() bool {
	return l.Price != nil || l.IsQuote
}

// AdjustedAmount converts raw integer units to whole tokens.
func AdjustedAmount(amount *big.Int, decimals int) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := dctx.Quo(out, DecFromBigInt(amount), pow10(decimals)); err != nil {
		return nil, err
	}
	return out, nil
}

// PositionValueUsd sums both legs at their USD prices. When the generic sum
// fails to resolve (comes out zero) but one leg is the quote currency
// itself, the value is recomputed anchored on that leg at 1:1; the anchored
// path takes precedence.
func PositionValueUsd(leg0, leg1 TokenLeg) (*apd.Decimal, error) {
	adj0, err := AdjustedAmount(leg0.Amount, leg0.Decimals)
	if err != nil {
		return nil, err
	}
	adj1, err := AdjustedAmount(leg1.Amount, leg1.Decimals)
	if err != nil {
		return nil, err
	}

	total := zeroDec()
	if leg0.Price != nil {
		if err := addProduct(total, adj0, leg0.Price); err != nil {
			return nil, err
		}
	}
	if leg1.Price != nil {
		if err := addProduct(total, adj1, leg1.Price); err != nil {
			return nil, err
		}
	}
	if !total.IsZero() {
		return total, nil
	}

	if leg1.IsQuote && leg0.Price != nil {
		return anchoredValue(adj0, leg0.Price, adj1)
	}
	if leg0.IsQuote && leg1.Price != nil {
		return anchoredValue(adj1, leg1.Price, adj0)
	}
	return zeroDec(), nil
}

// BaselineValueUsd prices the baseline allocation: against the recorded
// entry price when one leg is the quote currency, else at today's prices.
func BaselineValueUsd(adj0, adj1, entryPrice *apd.Decimal, leg0Quote, leg1Quote bool, price0, price1 *apd.Decimal) (*apd.Decimal, error) {
	if entryPrice == nil || entryPrice.Sign() <= 0 {
		return zeroDec(), nil
	}
	if leg1Quote {
		return anchoredValue(adj0, entryPrice, adj1)
	}
	if leg0Quote {
		inverse := new(apd.Decimal)
		if _, err := dctx.Quo(inverse, oneDec(), entryPrice); err != nil {
			return nil, err
		}
		return anchoredValue(adj1, inverse, adj0)
	}
	if price0 != nil && price1 != nil {
		total := zeroDec()
		if err := addProduct(total, adj0, price0); err != nil {
			return nil, err
		}
		if err := addProduct(total, adj1, price1); err != nil {
			return nil, err
		}
		return total, nil
	}
	return zeroDec(), nil
}

// anchoredValue is priced*price + anchor, the quote leg taken 1:1.
func anchoredValue(priced, price, anchor *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := dctx.Mul(out, priced, price); err != nil {
		return nil, err
	}
	if _, err := dctx.Add(out, out, anchor); err != nil {
		return nil, err
	}
	return out, nil
}

func addProduct(acc, a, b *apd.Decimal) error {
	product := new(apd.Decimal)
	if _, err := dctx.Mul(product, a, b); err != nil {
		return err
	}
	_, err := dctx.Add(acc, acc, product)
	return err
}
