package model

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

var minutesPerDay = apd.New(24*60, 0)

// dayspanUnits decomposes greedily: years, approximate months (30d), weeks,
// days, hours, minutes.
var dayspanUnits = []struct {
	minutes int64
	suffix  string
}{
	{365 * 24 * 60, "y"},
	{30 * 24 * 60, "mo"},
	{7 * 24 * 60, "w"},
	{24 * 60, "d"},
	{60, "h"},
	{1, "m"},
}

// FormatDaySpan renders a fractional number of days as a calendar span like
// "1y 2mo 3w", showing at most the three most significant non-zero units.
// Absent or non-finite values render "N/A", negatives "Met", and spans
// under a minute "<1m".
func FormatDaySpan(days *apd.Decimal) string {
	if !isFinite(days) {
		return "N/A"
	}
	if days.Negative && !days.IsZero() {
		return "Met"
	}

	total := new(apd.Decimal)
	if _, err := truncCtx.Mul(total, days, minutesPerDay); err != nil {
		return "N/A"
	}
	rounded := new(apd.Decimal)
	if _, err := truncCtx.Quantize(rounded, total, 0); err != nil {
		return "N/A"
	}
	totalMinutes, err := rounded.Int64()
	if err != nil {
		return "N/A"
	}

	if totalMinutes == 0 {
		return "<1m"
	}

	parts := make([]string, 0, 3)
	for _, unit := range dayspanUnits {
		count := totalMinutes / unit.minutes
		totalMinutes %= unit.minutes
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", count, unit.suffix))
		}
		if len(parts) == 3 {
			break
		}
	}

	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " ")
}
