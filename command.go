package clap

import (
	"path/filepath"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Command is the aggregate schema for one level of the command tree: its
// own name/metadata, the three classified argument stores, its groups,
// nested subcommands, and the derived indices used for uniqueness and
// lookup. A Command owns its declarations, groups and child subcommands;
// declarations hold only borrowed names into strings the Command owns
// (spec §3/§9 - no cyclic ownership, never a direct pointer graph).
type Command struct {
	Name      string
	About     string
	Author    string
	AfterHelp string
	Version   string
	Callback  func(*MatchResult) error

	customUsage     string
	parentPath      string
	resolvedBinName string
	isAutoHelp      bool

	flags       *orderedmap.OrderedMap[string, *Argument]
	options     *orderedmap.OrderedMap[string, *Argument]
	positionals *orderedmap.OrderedMap[int, *Argument]

	shortToName map[string]string
	longToName  map[string]string
	names       map[string]bool

	groups *orderedmap.OrderedMap[string, *Group]

	subcommands    *orderedmap.OrderedMap[string, *Command]
	nextPositional int

	needsShortHelp      bool
	needsLongHelp       bool
	needsShortVersion   bool
	needsLongVersion    bool
	needsHelpSubcommand bool
}

// NewCommand constructs an empty Command ready for AddArgument/AddGroup/
// AddSubcommand calls. See fluent.go for the chaining builder surface
// layered on top of this constructor.
func NewCommand(name string) *Command {
	return &Command{
		Name:                name,
		flags:               orderedmap.New[string, *Argument](),
		options:             orderedmap.New[string, *Argument](),
		positionals:         orderedmap.New[int, *Argument](),
		shortToName:         map[string]string{},
		longToName:          map[string]string{},
		names:               map[string]bool{},
		groups:              orderedmap.New[string, *Group](),
		subcommands:         orderedmap.New[string, *Command](),
		nextPositional:      1,
		needsShortHelp:      true,
		needsLongHelp:       true,
		needsShortVersion:   true,
		needsLongVersion:    true,
		needsHelpSubcommand: true,
	}
}

// binName is the qualified name used in usage text and error messages:
// the parent's binName plus this command's Name, space-separated, once a
// subcommand has been resolved (spec §2, §8 "subcommand recursion").
func (c *Command) binName() string {
	if c.parentPath != "" {
		return c.parentPath + " " + c.Name
	}
	if c.resolvedBinName != "" {
		return c.resolvedBinName
	}
	return c.Name
}

// SetUsage installs a custom usage string substituted verbatim for
// everything from the binary name onward (spec §4.5).
func (c *Command) SetUsage(usage string) {
	c.customUsage = usage
}

// AddArgument registers a new Argument, deriving its category and
// rejecting schema violations as panics (never a runtime parse error -
// spec §4.2, §7.1). Reserved-name auto-help/version tracking updates as
// a side effect: claiming -h/--help or -v/--version disables the
// corresponding auto-injected flag.
func (c *Command) AddArgument(a *Argument) {
	if a.Name == "" {
		panic(schemaErrorf(c, "argument must have a name"))
	}
	if c.names[a.Name] {
		panic(schemaErrorf(c, "duplicate argument name %q", a.Name))
	}
	if a.Short != "" && c.shortToName[a.Short] != "" {
		panic(schemaErrorf(c, "duplicate short flag %q", a.Short))
	}
	if a.Long != "" && c.longToName[a.Long] != "" {
		panic(schemaErrorf(c, "duplicate long flag %q", a.Long))
	}
	if a.Index != nil && (a.Short != "" || a.Long != "" || a.TakesValue) {
		panic(schemaErrorf(c, "positional argument %q cannot set short/long/takes-value", a.Name))
	}
	if a.Required && a.Index == nil && !a.TakesValue {
		panic(schemaErrorf(c, "flag %q cannot be required (only positionals and options can)", a.Name))
	}
	if len(a.PossibleValues) > 0 && a.Index == nil && !a.TakesValue {
		panic(schemaErrorf(c, "argument %q declares possible values but does not take a value", a.Name))
	}

	if a.Index != nil {
		idx := *a.Index
		if idx < 1 {
			panic(schemaErrorf(c, "positional %q has invalid index %d", a.Name, idx))
		}
		if _, exists := c.positionals.Get(idx); exists {
			panic(schemaErrorf(c, "duplicate positional index %d", idx))
		}
		c.positionals.Set(idx, a)
		if idx >= c.nextPositional {
			c.nextPositional = idx + 1
		}
	} else if a.TakesValue {
		c.options.Set(a.Name, a)
	} else {
		c.flags.Set(a.Name, a)
	}

	c.names[a.Name] = true
	if a.Short != "" {
		c.shortToName[a.Short] = a.Name
		if a.Short == "h" {
			c.needsShortHelp = false
		}
		if a.Short == "v" {
			c.needsShortVersion = false
		}
	}
	if a.Long != "" {
		c.longToName[a.Long] = a.Name
		if a.Long == "help" {
			c.needsLongHelp = false
		}
		if a.Long == "version" {
			c.needsLongVersion = false
		}
	}

	if a.Group != "" {
		g := c.group(a.Group)
		g.Members = append(g.Members, a.Name)
	}
}

// AddPositional is a convenience for a positional argument with no
// explicit Index: it receives the next free 1-based slot in insertion
// order (spec §4.2).
func (c *Command) AddPositional(a *Argument) {
	if a.Index == nil {
		idx := c.nextPositional
		a.Index = &idx
	}
	c.AddArgument(a)
}

// group returns the named Group, creating it on demand (spec §4.2).
func (c *Command) group(name string) *Group {
	if g, ok := c.groups.Get(name); ok {
		return g
	}
	g := &Group{Name: name}
	c.groups.Set(name, g)
	return g
}

// AddGroup registers (or merges into) a Group. It does not touch any
// required/blacklist set itself: computeBaseline adds a required group's
// own name, Requires and Conflicts to those sets at the start of every
// parse, before any token is read, because group-level constraints are
// unconditional rather than triggered by a later match.
func (c *Command) AddGroup(g *Group) {
	existing := c.group(g.Name)
	existing.Required = existing.Required || g.Required
	existing.Requires = append(existing.Requires, g.Requires...)
	existing.Conflicts = append(existing.Conflicts, g.Conflicts...)
	for _, m := range g.Members {
		if !existing.hasMember(m) {
			existing.Members = append(existing.Members, m)
		}
	}
}

// AddSubcommand registers a nested Command. Declaring one named "help"
// disables the auto-injected help subcommand (spec §4.2).
func (c *Command) AddSubcommand(sub *Command) {
	if _, exists := c.subcommands.Get(sub.Name); exists {
		panic(schemaErrorf(c, "duplicate subcommand %q", sub.Name))
	}
	c.subcommands.Set(sub.Name, sub)
	if sub.Name == "help" {
		c.needsHelpSubcommand = false
	}
}

// verifyPositionals is the pre-flight pass (spec §4.4): it asserts
// contiguous 1..N indices, that at most one positional is Multiple and
// that it is the highest-indexed one, and backfills the required-prefix
// rule (if positional k is required, positionals 1..k are all required).
// Applied recursively to every subcommand before parsing begins.
func (c *Command) verifyPositionals() {
	n := c.positionals.Len()
	if n > 0 {
		for i := 1; i <= n; i++ {
			if _, ok := c.positionals.Get(i); !ok {
				panic(schemaErrorf(c, "positional index %d is missing (found %d positionals, indices must be contiguous 1..%d)", i, n, n))
			}
		}

		multipleIdx := 0
		for i := 1; i <= n; i++ {
			p, _ := c.positionals.Get(i)
			if p.Multiple {
				if multipleIdx != 0 {
					panic(schemaErrorf(c, "only one positional may be declared multiple"))
				}
				multipleIdx = i
			}
		}
		if multipleIdx != 0 && multipleIdx != n {
			panic(schemaErrorf(c, "positional %d is declared multiple but is not the last positional", multipleIdx))
		}

		found := false
		for i := n; i >= 1; i-- {
			p, _ := c.positionals.Get(i)
			if found {
				p.Required = true
				continue
			}
			if p.Required {
				found = true
			}
		}
	}

	for pair := c.subcommands.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.verifyPositionals()
	}
}

// injectAutoArgs adds the reserved hclap_help flag unless the caller
// already claimed --help (leaving off its -h short when the caller claimed
// -h), the reserved vclap_version flag when Version is set and the caller
// has not claimed --version (likewise without -v when -v is claimed), and
// the auto "help" subcommand when c has subcommands and none of them is
// named "help". The reserved flags are entered in the short/long lookup
// indices so -h/--help and -v/--version resolve to them; sortedFlagNames
// lists them after every user flag, so user flags render first in
// FLAGS/help output.
func (c *Command) injectAutoArgs() {
	if c.needsLongHelp {
		a := &Argument{Name: "hclap_help", Long: "help", Help: "Prints help information"}
		if c.needsShortHelp {
			a.Short = "h"
			c.shortToName[a.Short] = a.Name
		}
		c.flags.Set(a.Name, a)
		c.names[a.Name] = true
		c.longToName[a.Long] = a.Name
	}
	if c.needsLongVersion && c.Version != "" {
		a := &Argument{Name: "vclap_version", Long: "version", Help: "Prints version information"}
		if c.needsShortVersion {
			a.Short = "v"
			c.shortToName[a.Short] = a.Name
		}
		c.flags.Set(a.Name, a)
		c.names[a.Name] = true
		c.longToName[a.Long] = a.Name
	}
	if c.needsHelpSubcommand && c.subcommands.Len() > 0 {
		help := NewCommand("help")
		help.About = "Prints this message"
		help.isAutoHelp = true
		c.subcommands.Set("help", help)
	}
}

// sortedFlagNames returns flag names in sorted-key order, except that the
// reserved hclap_help/vclap_version names come after every user flag, so
// the help renderer lists user flags first.
func (c *Command) sortedFlagNames() []string {
	names := sortedKeys(c.flags)
	reserved := func(n string) bool { return n == "hclap_help" || n == "vclap_version" }
	sort.SliceStable(names, func(i, j int) bool { return !reserved(names[i]) && reserved(names[j]) })
	return names
}

func (c *Command) sortedOptionNames() []string {
	return sortedKeys(c.options)
}

func sortedKeys(m *orderedmap.OrderedMap[string, *Argument]) []string {
	names := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	sort.Strings(names)
	return names
}

// lookupByName finds a declaration (flag, option, or positional) by its
// registered name, used for resolving Blacklist/Requires/Group edges
// which are stored as plain names, never direct pointers (spec §9).
func (c *Command) lookupByName(name string) (*Argument, bool) {
	if a, ok := c.flags.Get(name); ok {
		return a, true
	}
	if a, ok := c.options.Get(name); ok {
		return a, true
	}
	for pair := c.positionals.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == name {
			return pair.Value, true
		}
	}
	return nil, false
}

func (c *Command) lookupGroup(name string) (*Group, bool) {
	return c.groups.Get(name)
}

// resolveBinName extracts the final path component of argv[0] the way
// filepath.Base(os.Args[0]) is conventionally used to derive a program's
// display name (spec §6).
func resolveBinName(arg0 string) string {
	return filepath.Base(arg0)
}
