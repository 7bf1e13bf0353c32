package clap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ef-ds/deque"
)

// parseState is carried through one pass of the token loop (spec §4.3).
// A fresh parseState is built per Command.Parse/per subcommand recursion;
// no state is shared between sibling subcommand parses (spec §5).
type parseState struct {
	required    map[string]bool
	matchedReqs map[string]bool
	blacklist   map[string]bool
	posOnly     bool
	posCounter  int
	needsValOf  string
}

// Parse runs the Parser Engine against a raw argument vector whose first
// element is the program path (spec §6). It resolves bin_name from the
// final path component, injects auto-help/version/help-subcommand
// declarations, validates the pre-flight positional invariants for the
// whole command tree, then runs the single-pass token loop, recursing
// into a matched subcommand's own engine when one is found.
func (c *Command) Parse(args []string) (*MatchResult, error) {
	c.verifyPositionals()

	var rest []string
	if len(args) > 0 {
		c.resolvedBinName = resolveBinName(args[0])
		rest = args[1:]
	}
	return c.parseTokens(rest)
}

func (c *Command) parseTokens(tokens []string) (*MatchResult, error) {
	c.injectAutoArgs()

	m := newMatchResult()
	st := &parseState{
		required:    map[string]bool{},
		matchedReqs: map[string]bool{},
		blacklist:   map[string]bool{},
		posCounter:  1,
	}
	required, blacklist := c.computeBaseline()
	st.required, st.blacklist = required, blacklist

	dq := deque.New()
	for _, t := range tokens {
		dq.PushBack(t)
	}

	var subcmdName string
	var subcmd *Command
	var subcmdArgs []string

	for dq.Len() > 0 {
		v, _ := dq.PopFront()
		token := v.(string)

		if st.needsValOf != "" {
			if err := c.consumePendingValue(m, st, token); err != nil {
				return m, err
			}
			continue
		}

		if token == "--" {
			st.posOnly = true
			continue
		}

		if !st.posOnly && strings.HasPrefix(token, "--") && len(token) > 2 {
			sig, err := c.parseLongArg(m, st, token)
			if err != nil {
				return m, err
			}
			if sig != nil {
				return m, sig
			}
			continue
		}

		if !st.posOnly && strings.HasPrefix(token, "-") && len(token) > 1 {
			sig, err := c.parseShortArg(m, st, token)
			if err != nil {
				return m, err
			}
			if sig != nil {
				return m, sig
			}
			continue
		}

		// Subcommand or positional (spec §4.3 item 5).
		if sub, ok := c.subcommands.Get(token); ok && !st.posOnly {
			if sub.isAutoHelp {
				m.Usage = c.Usage()
				return m, ErrHelpRequested
			}
			subcmdName = token
			subcmd = sub
			for dq.Len() > 0 {
				rv, _ := dq.PopFront()
				subcmdArgs = append(subcmdArgs, rv.(string))
			}
			break
		}

		if err := c.consumePositional(m, st, token); err != nil {
			return m, err
		}
	}

	if st.needsValOf != "" {
		return m, parseErrorf(c, ErrMissingValue, "argument %s requires a value but none was supplied", st.needsValOf)
	}

	if err := c.validateBlacklist(m, st); err != nil {
		return m, err
	}
	if err := c.validateRequired(m, st); err != nil {
		return m, err
	}

	m.Usage = c.Usage()

	if subcmdName != "" {
		subcmd.parentPath = c.binName()
		nested, err := subcmd.parseTokens(subcmdArgs)
		m.Subcommand = &SubcommandMatch{Name: subcmdName, Matches: nested}
		if err != nil {
			return m, err
		}
	}

	return m, nil
}

// computeBaseline derives the required/blacklist sets a fresh parse pass
// starts from: every Required flag/option/positional, plus every
// required Group's own name, Requires and Conflicts propagated in
// immediately (spec §4.2 "effective immediately, before parsing starts").
func (c *Command) computeBaseline() (map[string]bool, map[string]bool) {
	required := map[string]bool{}
	blacklist := map[string]bool{}

	addRequired := func(a *Argument) {
		if a.Required {
			required[a.Name] = true
		}
	}
	for pair := c.flags.Oldest(); pair != nil; pair = pair.Next() {
		addRequired(pair.Value)
	}
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		addRequired(pair.Value)
	}
	for pair := c.positionals.Oldest(); pair != nil; pair = pair.Next() {
		addRequired(pair.Value)
	}
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		g := pair.Value
		if !g.Required {
			continue
		}
		required[g.Name] = true
		for _, n := range g.Requires {
			required[n] = true
		}
		for _, n := range g.Conflicts {
			blacklist[n] = true
		}
	}

	return required, blacklist
}

// isSatisfied reports whether name (an argument or group name) has a
// matched representative in m: directly for an argument, or via any
// member for a group (spec §4.3.4).
func (c *Command) isSatisfied(m *MatchResult, name string) bool {
	if g, ok := c.lookupGroup(name); ok {
		for _, mem := range g.Members {
			if m.Is(mem) {
				return true
			}
		}
		return false
	}
	return m.Is(name)
}

// applyConstraints performs the per-match bookkeeping of spec §4.3.3 for
// argument a, which has just been recognized (not necessarily valued
// yet, for an option awaiting a separate value token).
func (c *Command) applyConstraints(m *MatchResult, st *parseState, a *Argument) {
	delete(st.required, a.Name)
	for _, n := range a.Blacklist {
		st.blacklist[n] = true
		delete(st.required, n)
	}
	for _, n := range a.Requires {
		st.matchedReqs[n] = true
		if !c.isSatisfied(m, n) {
			st.required[n] = true
		}
	}
	if a.Group != "" {
		if g, ok := c.lookupGroup(a.Group); ok {
			for _, mem := range g.Members {
				if mem != a.Name {
					st.blacklist[mem] = true
				}
			}
			for _, n := range g.Requires {
				st.matchedReqs[n] = true
				if !c.isSatisfied(m, n) {
					st.required[n] = true
				}
			}
			for _, n := range g.Conflicts {
				st.blacklist[n] = true
			}
		}
	}
}

// checkImmediateConflict fails fast the moment a token about to be
// matched is already on the running blacklist, giving a precise message
// instead of waiting for the post-loop sweep (mirrors the Rust
// implementation's parse_long_arg/parse_short_arg immediate checks).
func (c *Command) checkImmediateConflict(a *Argument, st *parseState) error {
	if st.blacklist[a.Name] {
		return parseErrorf(c, ErrConflict, "the argument %s cannot be used with one or more of the other specified arguments", a.displayName())
	}
	return nil
}

func (c *Command) validateBlacklist(m *MatchResult, st *parseState) error {
	names := make([]string, 0, len(st.blacklist))
	for n := range st.blacklist {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		if c.isSatisfied(m, name) {
			disp := name
			if a, ok := c.lookupByName(name); ok {
				disp = a.displayName()
			}
			return parseErrorf(c, ErrConflict, "the argument %s cannot be used with one or more of the other specified arguments", disp)
		}
	}
	return nil
}

func (c *Command) validateRequired(m *MatchResult, st *parseState) error {
	satisfied := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for name := range st.required {
			if satisfied[name] {
				continue
			}
			if c.isSatisfied(m, name) {
				satisfied[name] = true
				changed = true
				continue
			}
			if a, ok := c.lookupByName(name); ok {
				for _, bn := range a.Blacklist {
					if c.isSatisfied(m, bn) {
						satisfied[name] = true
						changed = true
						for _, rn := range a.Requires {
							satisfied[rn] = true
						}
						break
					}
				}
			}
		}
	}

	var missing []string
	for name := range st.required {
		if !satisfied[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return parseErrorf(c, ErrMissingRequired, "the following required arguments were not supplied: %s", strings.Join(missing, ", "))
}

func (c *Command) consumePendingValue(m *MatchResult, st *parseState, value string) error {
	name := st.needsValOf
	st.needsValOf = ""
	a, ok := c.lookupByName(name)
	if !ok {
		return fmt.Errorf("internal error: pending option %q not found", name)
	}
	if !a.hasPossibleValue(value) {
		return c.invalidValueError(a, value)
	}
	entry := m.entry(a.Name)
	entry.Values = append(entry.Values, value)
	if a.Multiple {
		entry.Occurrences++
	} else {
		entry.Occurrences = 1
	}
	return nil
}

func (c *Command) invalidValueError(a *Argument, value string) error {
	return parseErrorf(c, ErrUnknownValue, "%q isn't a valid value for %s [valid values: %s]", value, a.displayName(), strings.Join(a.PossibleValues, ", "))
}

// consumePositional handles a bareword token once it has been determined
// not to be a subcommand name (spec §4.3 item 5).
func (c *Command) consumePositional(m *MatchResult, st *parseState, token string) error {
	p, ok := c.positionals.Get(st.posCounter)
	if !ok {
		return parseErrorf(c, ErrUnknownArgument, "unknown argument %q", token)
	}
	if err := c.checkImmediateConflict(p, st); err != nil {
		return err
	}
	if !p.hasPossibleValue(token) {
		return c.invalidValueError(p, token)
	}

	entry, existed := m.Args[p.Name]
	if existed && p.Multiple {
		entry.Occurrences++
		entry.Values = append(entry.Values, token)
	} else {
		entry = &MatchedArg{Occurrences: 1, Values: []string{token}}
		m.Args[p.Name] = entry
	}
	if !p.Multiple {
		st.posCounter++
	}

	c.applyConstraints(m, st, p)
	return nil
}

// parseLongArg handles a --long[=value] token (spec §4.3.1). The
// help/version sentinel (ErrHelpRequested/ErrVersionRequested) is returned
// as the first value and a parse error as the second, so the caller can
// short-circuit the loop on either.
func (c *Command) parseLongArg(m *MatchResult, st *parseState, token string) (error, error) {
	arg := strings.TrimPrefix(token, "--")
	var inlineValue *string
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		name := arg[:idx]
		val := arg[idx+1:]
		if val == "" {
			return nil, parseErrorf(c, ErrMissingValue, "argument --%s requires a value, but none was supplied", name)
		}
		arg = name
		inlineValue = &val
	}

	name, ok := c.longToName[arg]
	if !ok {
		return nil, parseErrorf(c, ErrUnknownArgument, "argument --%s isn't valid", arg)
	}
	a, _ := c.lookupByName(name)

	if err := c.checkImmediateConflict(a, st); err != nil {
		return nil, err
	}

	if sig := c.helpVersionSignal(m, a); sig != nil {
		return sig, nil
	}

	switch a.category() {
	case categoryOption:
		already := m.Is(a.Name)
		if already && !a.Multiple {
			return nil, parseErrorf(c, ErrRepeated, "argument --%s was supplied more than once, but does not support multiple values", arg)
		}
		if inlineValue != nil {
			if !a.hasPossibleValue(*inlineValue) {
				return nil, c.invalidValueError(a, *inlineValue)
			}
			entry := m.entry(a.Name)
			entry.Values = append(entry.Values, *inlineValue)
			if a.Multiple {
				entry.Occurrences++
			} else {
				entry.Occurrences = 1
			}
			c.applyConstraints(m, st, a)
			return nil, nil
		}
		if !already {
			m.entry(a.Name)
		}
		c.applyConstraints(m, st, a)
		st.needsValOf = a.Name
		return nil, nil
	default: // categoryFlag
		already := m.Is(a.Name)
		if already && !a.Multiple {
			return nil, parseErrorf(c, ErrRepeated, "argument %s was supplied more than once, but does not support multiple values", a.displayName())
		}
		entry := m.entry(a.Name)
		if a.Multiple {
			entry.Occurrences++
		} else {
			entry.Occurrences = 1
		}
		c.applyConstraints(m, st, a)
		return nil, nil
	}
}

// parseShortArg handles -c (single) and -abc (clustered-flags) tokens
// (spec §4.3.2).
func (c *Command) parseShortArg(m *MatchResult, st *parseState, token string) (error, error) {
	arg := strings.TrimPrefix(token, "-")

	if len(arg) > 1 {
		for i := 0; i < len(arg); i++ {
			ch := string(arg[i])
			name, ok := c.shortToName[ch]
			if !ok {
				return nil, parseErrorf(c, ErrUnknownArgument, "argument -%s isn't valid", arg)
			}
			a, _ := c.lookupByName(name)
			if a.category() != categoryFlag {
				return nil, parseErrorf(c, ErrUnknownArgument, "argument -%s isn't valid: -%s requires a separate value", arg, ch)
			}
			if err := c.checkImmediateConflict(a, st); err != nil {
				return nil, err
			}
			if sig := c.helpVersionSignal(m, a); sig != nil {
				return sig, nil
			}
			already := m.Is(a.Name)
			if already && !a.Multiple {
				return nil, parseErrorf(c, ErrRepeated, "argument %s was supplied more than once, but does not support multiple values", a.displayName())
			}
			entry := m.entry(a.Name)
			if a.Multiple {
				entry.Occurrences++
			} else {
				entry.Occurrences = 1
			}
			c.applyConstraints(m, st, a)
		}
		return nil, nil
	}

	ch := arg
	name, ok := c.shortToName[ch]
	if !ok {
		return nil, parseErrorf(c, ErrUnknownArgument, "argument -%s isn't valid", ch)
	}
	a, _ := c.lookupByName(name)
	if err := c.checkImmediateConflict(a, st); err != nil {
		return nil, err
	}
	if sig := c.helpVersionSignal(m, a); sig != nil {
		return sig, nil
	}

	switch a.category() {
	case categoryOption:
		already := m.Is(a.Name)
		if already && !a.Multiple {
			return nil, parseErrorf(c, ErrRepeated, "argument -%s was supplied more than once, but does not support multiple values", ch)
		}
		if !already {
			m.entry(a.Name)
		}
		c.applyConstraints(m, st, a)
		st.needsValOf = a.Name
		return nil, nil
	default:
		already := m.Is(a.Name)
		if already && !a.Multiple {
			return nil, parseErrorf(c, ErrRepeated, "argument %s was supplied more than once, but does not support multiple values", a.displayName())
		}
		entry := m.entry(a.Name)
		if a.Multiple {
			entry.Occurrences++
		} else {
			entry.Occurrences = 1
		}
		c.applyConstraints(m, st, a)
		return nil, nil
	}
}

// helpVersionSignal checks whether the just-recognized argument is one of
// the reserved auto-injected sentinels, rendering usage and returning the
// terminal sentinel error if so. Idempotence property (spec §8): this
// fires before any required-set validation runs.
func (c *Command) helpVersionSignal(m *MatchResult, a *Argument) error {
	switch a.Name {
	case "hclap_help":
		m.Usage = c.Usage()
		return ErrHelpRequested
	case "vclap_version":
		m.Usage = c.Usage()
		return ErrVersionRequested
	}
	return nil
}
