package model

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// EnginePrecision is the significant-digit budget for all monetary and
// price arithmetic. 50 digits covers the full tick domain (1.0001^±887272)
// without drift; binary floating point does not.
const EnginePrecision = 50

var dctx = apd.BaseContext.WithPrecision(EnginePrecision)

// truncCtx rounds toward zero, for collapsing decimals into raw integer
// token units.
var truncCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(EnginePrecision)
	c.Rounding = apd.RoundDown
	return c
}()

func zeroDec() *apd.Decimal {
	return apd.New(0, 0)
}

func oneDec() *apd.Decimal {
	return apd.New(1, 0)
}

// pow10 returns 10^n as a decimal, for any sign of n.
func pow10(n int) *apd.Decimal {
	return apd.New(1, int32(n))
}

// DecFromBigInt lifts a raw integer amount into the decimal domain.
func DecFromBigInt(x *big.Int) *apd.Decimal {
	return apd.NewWithBigInt(new(big.Int).Set(x), 0)
}

// ParseDec parses a decimal string, as stored by the baseline store.
func ParseDec(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	return d, err
}

// truncToBigInt floors a decimal to an integer number of raw units.
func truncToBigInt(d *apd.Decimal) (*big.Int, error) {
	q := new(apd.Decimal)
	if _, err := truncCtx.Quantize(q, d, 0); err != nil {
		return nil, err
	}
	out := new(big.Int).Set(&q.Coeff)
	if q.Negative {
		out.Neg(out)
	}
	return out, nil
}

func isFinite(d *apd.Decimal) bool {
	return d != nil && d.Form == apd.Finite
}
