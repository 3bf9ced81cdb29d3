package model

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// Valid tick domain of the concentrated-liquidity venue.
const (
	MinTick = -887272
	MaxTick = 887272
)

// priceBase is the venue's per-tick price ratio.
var priceBase = apd.New(10001, -4)

// q96 is the 2^96 scale of the venue's fixed-point sqrt price.
var q96 = apd.NewWithBigInt(new(big.Int).Lsh(big.NewInt(1), 96), 0)

// PriceOfTick converts a tick index to a decimal-adjusted price:
// 1.0001^tick * 10^(dec0-dec1).
func PriceOfTick(tick int, dec0 int, dec1 int) (*apd.Decimal, error) {
	price := new(apd.Decimal)
	if _, err := dctx.Pow(price, priceBase, apd.New(int64(tick), 0)); err != nil {
		return nil, err
	}
	if _, err := dctx.Mul(price, price, pow10(dec0-dec1)); err != nil {
		return nil, err
	}
	return price, nil
}

// SqrtPriceOfTick is 1.0001^(tick/2), the unit range bounds are quoted in.
func SqrtPriceOfTick(tick int) (*apd.Decimal, error) {
	half := new(apd.Decimal)
	if _, err := dctx.Quo(half, apd.New(int64(tick), 0), apd.New(2, 0)); err != nil {
		return nil, err
	}
	out := new(apd.Decimal)
	if _, err := dctx.Pow(out, priceBase, half); err != nil {
		return nil, err
	}
	return out, nil
}

// SqrtPriceOfX96 maps the venue's raw 2^96 fixed-point representation to a
// plain decimal sqrt price.
func SqrtPriceOfX96(raw *big.Int) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := dctx.Quo(out, DecFromBigInt(raw), q96); err != nil {
		return nil, err
	}
	return out, nil
}

// PriceOfSqrtX96 converts the raw fixed-point sqrt price to the same price
// unit as PriceOfTick: (raw/2^96)^2 * 10^(dec0-dec1).
func PriceOfSqrtX96(raw *big.Int, dec0 int, dec1 int) (*apd.Decimal, error) {
	root, err := SqrtPriceOfX96(raw)
	if err != nil {
		return nil, err
	}
	price := new(apd.Decimal)
	if _, err := dctx.Mul(price, root, root); err != nil {
		return nil, err
	}
	if _, err := dctx.Mul(price, price, pow10(dec0-dec1)); err != nil {
		return nil, err
	}
	return price, nil
}
