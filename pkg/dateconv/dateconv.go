// Package dateconv converts between the PHP-style date patterns the Aleph
// server and the VuFind display layer use. Only the source shapes the remote
// system actually emits are supported; anything else is a parse error the
// caller has to handle.
package dateconv

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ParseError reports a date value that matches none of the supported source
// patterns, or a source pattern this converter does not know.
type ParseError struct {
	Pattern string
	Value   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q for pattern %q", e.Value, e.Pattern)
}

// source patterns: PHP pattern -> validation regexp + Go layout.
var sources = map[string]struct {
	valid  *regexp.Regexp
	layout string
}{
	"Ymd":   {regexp.MustCompile(`^[0-9]{8}$`), "20060102"},
	"d/M/Y": {regexp.MustCompile(`^[0-9]{1,2}/[A-Za-z]{3}/[0-9]{4}$`), "2/Jan/2006"},
	"d/m/Y": {regexp.MustCompile(`^[0-9]{1,2}/[0-9]{1,2}/[0-9]{4}$`), "2/1/2006"},
}

var targetTokens = strings.NewReplacer(
	"Y", "2006",
	"M", "Jan",
	"m", "01",
	"d", "02",
)

// Convert parses value according to the PHP-style source pattern and formats
// it with the target pattern. Supported source patterns are "Ymd", "d/M/Y"
// and "d/m/Y"; target patterns may combine the tokens Y, M, m and d with
// literal separators. An unknown source pattern or a non-matching value
// yields a *ParseError.
func Convert(from, to, value string) (string, error) {
	src, ok := sources[from]
	if !ok {
		return "", &ParseError{Pattern: from, Value: value}
	}
	if !src.valid.MatchString(value) {
		return "", &ParseError{Pattern: from, Value: value}
	}

	// Month names come from Aleph in arbitrary case ("JAN", "jan").
	normalized := value
	if from == "d/M/Y" {
		parts := strings.Split(value, "/")
		parts[1] = strings.ToUpper(parts[1][:1]) + strings.ToLower(parts[1][1:])
		normalized = strings.Join(parts, "/")
	}

	t, err := time.Parse(src.layout, normalized)
	if err != nil {
		return "", &ParseError{Pattern: from, Value: value}
	}
	return t.Format(targetTokens.Replace(to)), nil
}
