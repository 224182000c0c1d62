package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts all text from a bulletin PDF file.
func ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	return text.String(), nil
}

// Commodity line: name, optional unit in parens or after a slash, then price.
// e.g. "Well-milled Rice (kg) 45.00" or "Galunggong/kg 180.00-200.00"
var pdfLinePattern = regexp.MustCompile(`^(.+?)\s*(?:\(([^)]+)\)|/(\w+))?\s+((?:₱\s*)?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?(?:\s*-\s*\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)?)\s*$`)

// ParsePDFBulletin extracts commodity rows from PDF bulletin text. Lines that
// do not look like a commodity-price row are skipped.
func ParsePDFBulletin(text string) []BulletinEntry {
	var entries []BulletinEntry
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = normalizeSpaces(line)
		if line == "" {
			continue
		}

		match := pdfLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		name := strings.TrimSpace(match[1])
		if name == "" || seen[name] {
			continue
		}

		unit := match[2]
		if unit == "" {
			unit = match[3]
		}

		price, err := ParsePrice(match[4])
		if err != nil {
			continue
		}

		seen[name] = true
		entries = append(entries, BulletinEntry{
			Name:  name,
			Unit:  strings.TrimSpace(unit),
			Price: price,
		})
	}

	return entries
}

var spacePattern = regexp.MustCompile(`[ \t\x{00A0}]+`)

func normalizeSpaces(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
