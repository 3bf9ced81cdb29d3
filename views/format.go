package views

import (
	"math/big"
	"strings"

	"github.com/ammcap/Ammlytics/model"
	"github.com/cockroachdb/apd/v2"
)

// Display rounding is half-even, matching how monetary amounts were always
// shown; engine math stays at full precision until this point.
var displayCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(model.EnginePrecision)
	c.Rounding = apd.RoundHalfEven
	return c
}()

func quantizeDp(d *apd.Decimal, dp int) (*apd.Decimal, bool) {
	if d == nil || d.Form != apd.Finite {
		return nil, false
	}
	out := new(apd.Decimal)
	if _, err := displayCtx.Quantize(out, d, int32(-dp)); err != nil {
		return nil, false
	}
	return out, true
}

// formatFixed renders with a fixed number of decimals, no grouping.
func formatFixed(d *apd.Decimal, dp int) string {
	q, ok := quantizeDp(d, dp)
	if !ok {
		return "0"
	}
	return q.Text('f')
}

// formatGrouped renders with fixed decimals and comma-grouped thousands,
// like "12,345.67".
func formatGrouped(d *apd.Decimal, dp int) string {
	q, ok := quantizeDp(d, dp)
	if !ok {
		if dp > 0 {
			return "0." + strings.Repeat("0", dp)
		}
		return "0"
	}
	text := q.Text('f')

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		return sign + grouped + "." + fracPart
	}
	return sign + grouped
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func formatUsd(d *apd.Decimal) string {
	return formatGrouped(d, 2)
}

func formatPrice(d *apd.Decimal) string {
	return formatGrouped(d, 0)
}

func formatPercent(d *apd.Decimal) string {
	return formatGrouped(d, 2) + "%"
}

// formatILPercent renders an IL fraction as a percentage, "0.05" -> "5.00%".
func formatILPercent(fraction *apd.Decimal) string {
	if fraction == nil {
		return "0.00%"
	}
	scaled := new(apd.Decimal)
	if _, err := displayCtx.Mul(scaled, fraction, apd.New(100, 0)); err != nil {
		return "0.00%"
	}
	return formatFixed(scaled, 2) + "%"
}

// formatAmount renders a raw token amount human-readable, with precision
// stepped by magnitude so dust neither vanishes nor drowns the line.
func formatAmount(raw *big.Int, decimals int) string {
	if raw == nil || raw.Sign() == 0 {
		return "0"
	}
	adjusted, err := model.AdjustedAmount(raw, decimals)
	if err != nil || adjusted.IsZero() {
		return "0"
	}
	if adjusted.Cmp(apd.New(1, -4)) < 0 {
		return formatFixed(adjusted, 8)
	}
	if adjusted.Cmp(apd.New(1, 0)) < 0 {
		return formatFixed(adjusted, 4)
	}
	return formatGrouped(adjusted, 2)
}
