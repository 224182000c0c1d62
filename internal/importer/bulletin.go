package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// BulletinEntry is one commodity row parsed from a price bulletin.
type BulletinEntry struct {
	Name  string
	Unit  string
	Price decimal.Decimal
}

var pricePattern = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)

// ParsePrice extracts a peso amount from bulletin text like "₱45.00",
// "1,250.00/kg" or a range "45.00-50.00". Ranges resolve to the upper bound,
// the prevailing retail price in DA bulletins.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₱", "")
	s = strings.ReplaceAll(s, "PHP", "")

	matches := pricePattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return decimal.Zero, fmt.Errorf("no price found in %q", s)
	}

	// last match wins so "45.00-50.00" takes the upper bound
	raw := strings.ReplaceAll(matches[len(matches)-1], ",", "")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing price %q: %w", raw, err)
	}

	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive price in %q", s)
	}

	return price, nil
}

// ParseBulletinTable extracts commodity rows from a bulletin HTML document.
// Expects tables with commodity, unit and price columns; rows without a
// parseable price are skipped.
func ParseBulletinTable(doc *goquery.Document) []BulletinEntry {
	var entries []BulletinEntry

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		unit := strings.TrimSpace(cells.Eq(1).Text())
		if name == "" {
			return
		}

		price, err := ParsePrice(cells.Eq(2).Text())
		if err != nil {
			return
		}

		entries = append(entries, BulletinEntry{
			Name:  name,
			Unit:  unit,
			Price: price,
		})
	})

	return entries
}
