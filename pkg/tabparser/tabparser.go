// Package tabparser reads the fixed-format configuration tables an Aleph
// installation is driven by (tab15, tab40, tab_sub_library). The tables are
// self-describing: a header line marks field boundaries in-band, and data
// lines are matched against a regular expression derived from that header.
package tabparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// lineWidth is the width data lines are right-padded to before matching, so
// short lines still fill every field of the header pattern.
const lineWidth = 80

// Extract is invoked for every data line matched by the current header
// pattern. groups[0] is the full match and the header fields follow from
// index 1, so field numbering is 1-based.
type Extract func(groups []string)

// ParseFile parses the table at path. An unreadable file is a configuration
// error and is returned to the caller; it never degrades to an empty table.
func ParseFile(path string, ex Extract) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	if err := Parse(f, ex); err != nil {
		return fmt.Errorf("parse table %s: %w", path, err)
	}
	return nil
}

// Parse scans r line by line. A line containing the header marker "!!"
// re-derives the extraction pattern; lines containing a comment "!", empty
// lines, and lines seen before any header are skipped; every other line is
// padded and matched against the current pattern.
func Parse(r io.Reader, ex Extract) error {
	var pattern *regexp.Regexp

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")

		if strings.Contains(line, "!!") {
			p, err := headerPattern(line)
			if err != nil {
				return err
			}
			pattern = p
			continue
		}
		if strings.Contains(line, "!") || pattern == nil || line == "" {
			continue
		}

		if len(line) < lineWidth {
			line += strings.Repeat(" ", lineWidth-len(line))
		}
		if groups := pattern.FindStringSubmatch(line); groups != nil {
			ex(groups)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read table: %w", err)
	}
	return nil
}

// headerPattern turns a header line into the extraction pattern: each dash
// becomes a field separator, each "!" stands for any character, and angle
// brackets are stripped. The wrapping parenthesis pairs with the first
// separator, so each header field ends up as one capture group.
func headerPattern(line string) (*regexp.Regexp, error) {
	s := strings.ReplaceAll(line, "-", `)\s(`)
	s = strings.ReplaceAll(s, "!", ".")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	p, err := regexp.Compile("(" + s + ")")
	if err != nil {
		return nil, fmt.Errorf("derive pattern from header %q: %w", line, err)
	}
	return p, nil
}
