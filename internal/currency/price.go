// Package currency localizes canonical USD prices for a visitor's location.
package currency

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TakaSymbol selects South Asian digit grouping.
const TakaSymbol = "৳"

var (
	pricePattern = regexp.MustCompile(`\$(\d+(?:,\d+)*(?:\.\d+)?)`)

	westernPrinter    = message.NewPrinter(language.AmericanEnglish)
	southAsianPrinter = message.NewPrinter(language.MustParse("en-IN"))
)

// ConvertPrice extracts the first "$<amount>" in price, converts it with rate
// and renders symbol plus a grouped integer. A price without a dollar amount
// yields "".
func ConvertPrice(price string, rate float64, symbol string) string {
	m := pricePattern.FindStringSubmatch(price)
	if m == nil {
		return ""
	}
	usd, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return ""
	}

	converted := int64(math.Round(usd * rate))
	p := westernPrinter
	if symbol == TakaSymbol {
		p = southAsianPrinter
	}
	return symbol + p.Sprintf("%d", converted)
}
