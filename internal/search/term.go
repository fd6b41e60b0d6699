// Package search implements the free-text part of contact filtering: a
// case-insensitive substring term that can either be evaluated in memory
// (file-backed store) or rendered as a SQL LIKE pattern over a pre-folded
// column (GORM store). Both paths fold with the same Unicode case folding.
//
// The package keeps no state and does no logging. A Term is immutable and
// safe for concurrent use.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Term is a compiled search string.
type Term struct {
	raw    string
	folded string
}

// Compile trims q, collapses internal whitespace runs, and NFC-normalizes it.
// An empty result yields the zero Term, which matches everything.
func Compile(q string) Term {
	q = strings.TrimSpace(normalizeWhitespace(q))
	if q == "" {
		return Term{}
	}
	q = norm.NFC.String(q)
	return Term{raw: q, folded: fold(q)}
}

// Empty reports whether the term constrains nothing.
func (t Term) Empty() bool { return t.raw == "" }

// String returns the normalized term.
func (t Term) String() string { return t.raw }

// Match reports whether any of fields contains the term, ignoring case.
// The zero Term matches everything.
func (t Term) Match(fields ...string) bool {
	if t.Empty() {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Fold(f), t.folded) {
			return true
		}
	}
	return false
}

// Fold NFC-normalizes and case-folds s. A Term matches a field when the
// folded field contains the folded term.
func Fold(s string) string {
	return fold(norm.NFC.String(s))
}

// Document folds fields into one searchable text. Fields are separated by
// a newline, which a compiled Term never contains, so a match never spans
// two fields.
func Document(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, Fold(f))
		}
	}
	return strings.Join(parts, "\n")
}

// LikeEscape is the escape character used by LikePattern.
const LikeEscape = `\`

// LikePattern renders the folded term for `col LIKE ? ESCAPE '\'` against a
// column filled by Document. LIKE wildcards in the term are escaped so they
// match literally.
func (t Term) LikePattern() string {
	r := strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")
	return "%" + r.Replace(t.folded) + "%"
}

// fold builds a fresh Caser per call: Casers are stateful and must not be
// shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
