package rules

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseWarning describes a rule-file line that could not be turned into a
// rule. Malformed lines are skipped but never silently: callers surface
// warnings so operator typos don't vanish.
type ParseWarning struct {
	Line   int
	Text   string
	Reason string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Reason, w.Text)
}

// Parse reads newline-delimited rules from r.
//
// Semantics:
//   - blank lines are ignored
//   - lines whose first non-space character is '#' are comments
//   - remaining lines must split on whitespace into exactly two tokens:
//     a directory name and a sentinel file name
//   - lines with any other token count produce a ParseWarning and are skipped
func Parse(r io.Reader) ([]Rule, []ParseWarning, error) {
	s := bufio.NewScanner(r)

	var (
		rs       []Rule
		warnings []ParseWarning
		lineNo   int
	)
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimRight(s.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		switch len(tokens) {
		case 2:
			rs = append(rs, Rule{Dir: tokens[0], Sentinel: tokens[1]})
		case 1:
			warnings = append(warnings, ParseWarning{
				Line:   lineNo,
				Text:   line,
				Reason: "missing sentinel file name",
			})
		default:
			warnings = append(warnings, ParseWarning{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("expected 2 tokens, got %d", len(tokens)),
			})
		}
	}
	if err := s.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan rules: %w", err)
	}

	return rs, warnings, nil
}

// ParseString parses rules from string input.
func ParseString(src string) ([]Rule, []ParseWarning, error) {
	return Parse(strings.NewReader(src))
}
