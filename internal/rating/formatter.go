package rating

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// DefaultPrecision is the number of decimals used for consumption values.
const DefaultPrecision = 2

// FormatConsumption formats a consumption value with two decimals and
// thousand separators. Example: FormatConsumption(12012) returns "12,012.00".
func FormatConsumption(v float64) string {
	return FormatFloat(v, DefaultPrecision)
}

// FormatFloat formats f with the given number of decimals and thousand
// separators in the integer part. Non-finite values are returned as
// strconv renders them.
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64 range: keep the plain rendering.
		return formatted
	}

	grouped := printer.Sprintf("%d", n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-" + grouped
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + fracPart
}

// FormatPlain formats a consumption value the way it appears in exported
// reports: two decimals, no grouping.
func FormatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', DefaultPrecision, 64)
}
