package usage

import "errors"

// ErrEmptyDeclaration is returned by Assemble when Tokenize produced no
// tokens at all (distinct from the panic Tokenize itself raises on a
// blank string: this covers a non-blank declaration that nonetheless
// contains no short/long/name/help content, e.g. punctuation noise).
var ErrEmptyDeclaration = errors.New("usage: declaration yields no tokens")

// ParsedArg is the assembled, not-yet-registered shape a usage-string
// declaration resolves to. It intentionally has no dependency back on
// the clap package: Tokenize/Assemble are a standalone mini-language,
// and the clap package adapts ParsedArg into an *Argument (see
// clap.FromUsage), rather than this package reaching up into it.
type ParsedArg struct {
	Name       string
	Short      string
	Long       string
	Help       string
	Required   bool
	TakesValue bool
	Multiple   bool
}

// Assemble applies the five assembly rules of the usage-string grammar,
// in order, to a token stream produced by Tokenize:
//
//  1. The first Name token sets the argument's Name and Required.
//  2. A second Name token seen after a Long token overrides a
//     long-derived name, but only if the name so far was itself derived
//     from that Long token (i.e. no explicit Name preceded it).
//  3. Seeing a Short or Long token together with a Name token implies
//     TakesValue (the name is the option's value placeholder, not a
//     positional slot).
//  4. A Long token with no accompanying Name token adopts the long form
//     itself as the argument's Name.
//  5. A MultipleMarker token sets Multiple.
//
// Assemble is pure: it never registers the result against a Command.
func Assemble(tokens []Token) (*ParsedArg, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyDeclaration
	}

	p := &ParsedArg{}
	var nameFromLong bool
	var sawExplicitName bool
	var help []string

	for _, t := range tokens {
		switch t.Kind {
		case KindShort:
			p.Short = t.Text
		case KindLong:
			p.Long = t.Text
			if !sawExplicitName {
				p.Name = t.Text
				nameFromLong = true
			}
		case KindName:
			if !sawExplicitName || (nameFromLong && p.Name == p.Long) {
				p.Name = t.Text
				p.Required = t.Required
				sawExplicitName = true
				nameFromLong = false
			}
		case KindMultiple:
			p.Multiple = true
		case KindHelp:
			help = append(help, t.Text)
		}
	}

	if sawExplicitName && (p.Short != "" || p.Long != "") {
		p.TakesValue = true
	}

	if len(help) > 0 {
		p.Help = joinHelp(help)
	}

	return p, nil
}

func joinHelp(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}
