package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// Helper function to normalize strings
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var (
	inr      = money.GetCurrency(money.INR)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FormatCurrency renders an amount in rupees with Indian digit grouping and
// at most two fraction digits, e.g. ₹10,93,350 or ₹3,022.3.
func FormatCurrency(amount float64) string {
	if !isFinite(amount) {
		return notAvailable
	}
	// go-money works on minor units
	paise := decimal.NewFromFloat(amount).Shift(int32(inr.Fraction)).Round(0)
	if paise.GreaterThan(maxMinor) || paise.LessThan(minMinor) {
		return notAvailable
	}
	m := money.New(paise.IntPart(), inr.Code)

	whole, frac, _ := strings.Cut(decimal.New(m.Amount(), -int32(inr.Fraction)).Abs().String(), ".")
	digits := groupIndian(whole, inr.Thousand)
	if frac != "" {
		digits += inr.Decimal + frac
	}
	if m.IsNegative() {
		digits = "-" + digits
	}
	return strings.Replace(strings.Replace(inr.Template, "1", digits, 1), "$", inr.Grapheme, 1)
}

// groupIndian separates the last three digits, then every two: 1093350 -> 10,93,350.
func groupIndian(whole, sep string) string {
	if len(whole) <= 3 {
		return whole
	}
	head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
	var b strings.Builder
	for i, r := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String() + sep + tail
}

// FormatPercent renders a signed percentage with one decimal, e.g. +72.1%.
func FormatPercent(value float64) string {
	if !isFinite(value) {
		return notAvailable
	}
	if value > 0 {
		return fmt.Sprintf("+%.1f%%", value)
	}
	return fmt.Sprintf("%.1f%%", value)
}

// FormatRatio renders a valuation multiple, e.g. 22.2x.
func FormatRatio(value float64) string {
	if !isFinite(value) {
		return notAvailable
	}
	return fmt.Sprintf("%.1fx", value)
}

// FormatFixed renders a plain one-decimal number.
func FormatFixed(value float64) string {
	if !isFinite(value) {
		return notAvailable
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}
