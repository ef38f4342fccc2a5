// Package scanner extracts @require declarations from asset sources.
package scanner

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	// requirePattern matches a declaration and captures its bracketed list.
	// Leading comment markers are allowed before the annotation.
	requirePattern = regexp.MustCompile(`(?:\/\/|\/\*|\s*\*\s*)*\**\s*@require\s*(\[[^\]]*\])`)

	commentNoise  = regexp.MustCompile(`\*|//|\r?\n\s*`)
	trailingComma = regexp.MustCompile(`,\s*\]$`)
	singleQuoted  = regexp.MustCompile(`'((?:[^'\\"]|\\.)*)'`)
)

// Scanner finds requirement declarations in file bodies.
type Scanner struct {
	logger ports.Logger
}

// New creates a Scanner that reports malformed declarations to logger.
func New(logger ports.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan returns every requirement declared in src, in declaration order.
// Malformed declarations are logged and skipped.
func (s *Scanner) Scan(src string) []string {
	results := make([]string, 0)
	for _, match := range requirePattern.FindAllStringSubmatch(src, -1) {
		reqs, err := decode(match[1])
		if err != nil {
			s.warn(match[1], err)
			continue
		}
		results = append(results, reqs...)
	}
	return results
}

func (s *Scanner) warn(raw string, cause error) {
	if s.logger == nil {
		return
	}
	err := zerr.Wrap(cause, domain.ErrAnnotationParse.Error()+" "+raw)
	s.logger.Warn(err.Error())
}

// decode turns the bracketed list of a declaration into its entries.
func decode(raw string) ([]string, error) {
	cleaned := commentNoise.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = trailingComma.ReplaceAllString(cleaned, "]")
	cleaned = singleQuoted.ReplaceAllString(cleaned, `"$1"`)

	var reqs []string
	if err := json.Unmarshal([]byte(cleaned), &reqs); err != nil {
		return nil, err
	}
	out := reqs[:0]
	for _, r := range reqs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, nil
}
