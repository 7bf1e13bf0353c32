// Package usage implements the declarative usage-string mini-language
// used to describe one argument in a single line, e.g.
//
//	-c --config <cfg> 'Sets a custom config file'
//	<input>...        'One or more input files'
//
// Tokenize is a pure function (spec §4.1): given a declaration line it
// returns an ordered token list with no global state. Assemble then
// applies the ordered assembly rules to build an unregistered ParsedArg
// from that token list (clap.FromUsage turns it into a *clap.Argument).
package usage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// TokenKind discriminates the five token shapes of spec §4.1.
type TokenKind int

const (
	KindName TokenKind = iota
	KindShort
	KindLong
	KindHelp
	KindMultiple
)

// Token is one unit of a tokenized usage-string declaration.
type Token struct {
	Kind     TokenKind
	Text     string
	Required bool // meaningful only for KindName
}

var fieldPattern = regexp.MustCompile(`^(?:(--[A-Za-z][A-Za-z0-9_-]*)|(-[A-Za-z0-9])|(<[^<>]+>)|(\[[^\[\]]+\])|(\.\.\.)|(=))`)

// Tokenize splits a single usage-string declaration into its token
// stream. It first uses shlex.Split to break the line into
// whitespace/quote-aware fields (so a single-quoted help string survives
// as one field even when it contains spaces), then classifies each field
// by repeatedly matching the leading short/long/name/multiple-marker
// shape off its front, treating whatever is left over as help text.
//
// A zero-length declaration is a programming error and panics (spec
// §4.1 "A zero-length input is a programming error and fails loudly").
func Tokenize(decl string) ([]Token, error) {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		panic("usage: empty declaration")
	}

	fields, err := shlex.Split(decl)
	if err != nil {
		return nil, fmt.Errorf("usage: %w", err)
	}

	var tokens []Token
	for _, field := range fields {
		rest := field
		matchedAny := false
		for rest != "" {
			loc := fieldPattern.FindStringSubmatchIndex(rest)
			if loc == nil || loc[0] != 0 {
				break
			}
			matchedAny = true
			switch {
			case loc[2] >= 0: // long
				tokens = append(tokens, Token{Kind: KindLong, Text: rest[loc[2]+2 : loc[3]]})
			case loc[4] >= 0: // short
				tokens = append(tokens, Token{Kind: KindShort, Text: rest[loc[4]+1 : loc[5]]})
			case loc[6] >= 0: // <name>
				tokens = append(tokens, Token{Kind: KindName, Text: rest[loc[6]+1 : loc[7]-1], Required: true})
			case loc[8] >= 0: // [name]
				tokens = append(tokens, Token{Kind: KindName, Text: rest[loc[8]+1 : loc[9]-1], Required: false})
			case loc[10] >= 0: // ...
				tokens = append(tokens, Token{Kind: KindMultiple})
			case loc[12] >= 0: // '=' separator, discarded
			}
			rest = rest[loc[1]:]
		}
		if !matchedAny {
			tokens = append(tokens, Token{Kind: KindHelp, Text: field})
			continue
		}
		if rest != "" {
			// Leftover text glued onto a recognized prefix (rare; treat
			// as a continuation of help text).
			tokens = append(tokens, Token{Kind: KindHelp, Text: rest})
		}
	}

	return tokens, nil
}
