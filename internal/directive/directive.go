// SPDX-License-Identifier: MPL-2.0

// Package directive turns the raw command-line token list into typed
// directives.
//
// The grammar has three shapes:
//
//	word          a command (any token that is not a dash followed by something)
//	--name        a flag, always true
//	-name value   a category carrying the next token as its value
//
// Parsing is total: it never fails. A category that is the last token has no
// value; deciding what that means is left to whoever reads the value.
package directive

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Kind tags the shape of a Directive.
type Kind int

const (
	// KindCommand is a bare token such as "help".
	KindCommand Kind = iota
	// KindFlag is a long option such as "--debug".
	KindFlag
	// KindCategory is a short option with an attached value such as "-f a.txt".
	KindCategory
)

// Recognized category names.
const (
	CategoryFile     = "f"
	CategoryText     = "t"
	CategoryTextFile = "tf"
	CategoryOutput   = "o"
)

// Directive is one parsed command-line unit.
type Directive struct {
	Kind Kind
	// Name is the bare token for commands and the dash-stripped name for
	// flags and categories.
	Name string
	// Value is the token following a category. It is empty for commands and
	// flags, whose value is implicitly true.
	Value string
	// HasValue is false only for a category that ended the token list.
	HasValue bool
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindFlag:
		return "flag"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// String renders the directive back into token form, for diagnostics.
func (d Directive) String() string {
	switch d.Kind {
	case KindFlag:
		return "--" + d.Name
	case KindCategory:
		if !d.HasValue {
			return "-" + d.Name + " <missing>"
		}
		return "-" + d.Name + " " + d.Value
	default:
		return d.Name
	}
}

// Parse converts tokens into directives, consuming one token per command or
// flag and two per category.
func Parse(tokens []string) []Directive {
	directives := make([]Directive, 0, len(tokens))

	for i := 0; i < len(tokens); {
		name, ok := trimDash(tokens[i])
		if !ok {
			directives = append(directives, Directive{Kind: KindCommand, Name: tokens[i], HasValue: true})
			i++
			continue
		}

		if long, ok := trimDash(name); ok {
			directives = append(directives, Directive{Kind: KindFlag, Name: long, HasValue: true})
			i++
			continue
		}

		d := Directive{Kind: KindCategory, Name: name}
		if i+1 < len(tokens) {
			d.Value = tokens[i+1]
			d.HasValue = true
		}
		directives = append(directives, d)
		i += 2
	}

	return directives
}

// Has reports whether any raw token equals one of the given names. It looks
// at tokens, not directives, so it also matches a name used as a value.
func Has(tokens []string, names ...string) bool {
	return slices.ContainsFunc(tokens, func(tok string) bool {
		return slices.Contains(names, tok)
	})
}

// trimDash strips one leading dash when at least one character follows it.
func trimDash(token string) (string, bool) {
	if len(token) < 2 || !strings.HasPrefix(token, "-") {
		return "", false
	}
	return token[1:], true
}
