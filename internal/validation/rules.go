package validation

import (
	"regexp"
	"strings"
)

// FieldName identifies one input of the inquiry form
type FieldName string

const (
	NameField    FieldName = "name"
	EmailField   FieldName = "email"
	SubjectField FieldName = "subject"
	MessageField FieldName = "message"
)

// FieldOrder is the closed field set in the order fields are checked and reported
var FieldOrder = []FieldName{NameField, EmailField, SubjectField, MessageField}

// FieldRule is the declarative constraint set for one input.
// A zero MinLength or nil Pattern means the check is skipped.
type FieldRule struct {
	Required     bool
	MinLength    int
	Pattern      *regexp.Regexp
	Source       string // Pattern as written for the page
	ErrorMessage string
}

// whitespaceClass is the body of a character class matching every code point a page
// script treats as whitespace (\s and String.prototype.trim). Go's \s is ASCII only.
const whitespaceClass = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// pagePattern compiles a pattern written for the page, where \s only ever appears
// inside a character class.
func pagePattern(source string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(source, `\s`, whitespaceClass))
}

const (
	namePattern  = `^[a-zA-Z\s]+$`
	emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
)

// rules is fixed at startup and never mutated
var rules = map[FieldName]FieldRule{
	NameField: {
		Required:     true,
		MinLength:    2,
		Pattern:      pagePattern(namePattern),
		Source:       namePattern,
		ErrorMessage: "Name must be at least 2 characters and contain only letters and spaces",
	},
	EmailField: {
		Required:     true,
		Pattern:      pagePattern(emailPattern),
		Source:       emailPattern,
		ErrorMessage: "Please enter a valid email address",
	},
	SubjectField: {
		Required:     true,
		MinLength:    3,
		ErrorMessage: "Subject must be at least 3 characters long",
	},
	MessageField: {
		Required:     true,
		MinLength:    10,
		ErrorMessage: "Message must be at least 10 characters long",
	},
}

// Rule returns the rule for a field
func Rule(field FieldName) (FieldRule, bool) {
	r, ok := rules[field]
	return r, ok
}

// RuleDescriptor is the wire form of a FieldRule, used by pages that mirror the
// rules client-side. Pattern is in page (ECMAScript) syntax.
type RuleDescriptor struct {
	Field        string `json:"field"`
	Required     bool   `json:"required"`
	MinLength    int    `json:"min_length,omitempty"`
	Pattern      string `json:"pattern,omitempty"`
	ErrorMessage string `json:"error_message"`
}

// Describe lists the rule set in field order
func Describe() []RuleDescriptor {
	out := make([]RuleDescriptor, 0, len(FieldOrder))
	for _, field := range FieldOrder {
		r := rules[field]
		d := RuleDescriptor{
			Field:        string(field),
			Required:     r.Required,
			MinLength:    r.MinLength,
			ErrorMessage: r.ErrorMessage,
		}
		d.Pattern = r.Source
		out = append(out, d)
	}
	return out
}

// isSpace reports whether r is whitespace in the sense of whitespaceClass
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// TrimSpace strips leading and trailing whitespace the way the page trims input
func TrimSpace(value string) string {
	return strings.TrimFunc(value, isSpace)
}
