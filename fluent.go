package clap

import "github.com/arglex/clap/usage"

// FromUsage builds an Argument from a single-line usage-string
// declaration (spec §4.1), e.g.
//
//	clap.FromUsage("-c --config <cfg> 'Sets a custom config file'")
//
// It is a thin adapter over usage.Tokenize/usage.Assemble: this package
// never imports the parsed-token shapes back into the usage package, so
// the usage mini-language stays standalone and testable in isolation.
func FromUsage(decl string, configs ...ConfigureArgumentFunc) (*Argument, error) {
	tokens, err := usage.Tokenize(decl)
	if err != nil {
		return nil, err
	}
	parsed, err := usage.Assemble(tokens)
	if err != nil {
		return nil, err
	}

	a := &Argument{
		Name:       parsed.Name,
		Short:      parsed.Short,
		Long:       parsed.Long,
		Help:       parsed.Help,
		Required:   parsed.Required,
		TakesValue: parsed.TakesValue,
		Multiple:   parsed.Multiple,
	}
	for _, cfg := range configs {
		cfg(a)
	}
	return a, nil
}

// ConfigureArgumentFunc configures an Argument as part of a NewArg(...)
// or Argument.Set(...) call. Move-mutate chaining over a single
// *Argument, the same shape as napalu-goopt's fluentArgument.go.
type ConfigureArgumentFunc func(*Argument)

// NewArg builds an Argument from the given name plus configuration
// functions. Argument is not THE CORE (spec §1 treats the builder as an
// external collaborator); it exists only so the engine is callable.
func NewArg(name string, configs ...ConfigureArgumentFunc) *Argument {
	a := &Argument{Name: name}
	for _, cfg := range configs {
		cfg(a)
	}
	return a
}

// Set applies additional ConfigureArgumentFunc(s) to an already-built
// Argument.
func (a *Argument) Set(configs ...ConfigureArgumentFunc) *Argument {
	for _, cfg := range configs {
		cfg(a)
	}
	return a
}

// WithShort sets the argument's single-character short form.
func WithShort(short string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Short = short }
}

// WithLong sets the argument's long form (without leading dashes).
func WithLong(long string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Long = long }
}

// WithHelp sets the display text shown in FLAGS/OPTIONS/POSITIONAL
// sections.
func WithHelp(help string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Help = help }
}

// TakesValue marks the argument as an Option (mutually exclusive with a
// positional Index).
func TakesValue() ConfigureArgumentFunc {
	return func(a *Argument) { a.TakesValue = true }
}

// AtIndex marks the argument as a Positional at the given 1-based slot.
// Use Command.AddPositional instead when the index should be inferred.
func AtIndex(index int) ConfigureArgumentFunc {
	return func(a *Argument) { a.Index = &index }
}

// Required marks the argument as required by default (spec §4 demotion
// semantics notwithstanding).
func Required() ConfigureArgumentFunc {
	return func(a *Argument) { a.Required = true }
}

// Multi marks the argument as repeatable: occurrence counting for flags,
// repeatable values for options, "collect the rest" for the last
// positional.
func Multi() ConfigureArgumentFunc {
	return func(a *Argument) { a.Multiple = true }
}

// PossibleValues restricts the accepted values for an option or
// positional to the given enumerated set.
func PossibleValues(values ...string) ConfigureArgumentFunc {
	return func(a *Argument) { a.PossibleValues = values }
}

// ConflictsWith records names (arguments or groups) that must not appear
// alongside this one.
func ConflictsWith(names ...string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Blacklist = append(a.Blacklist, names...) }
}

// RequiresArgs records names (arguments or groups) that must appear
// whenever this one does.
func RequiresArgs(names ...string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Requires = append(a.Requires, names...) }
}

// InGroup assigns the argument to a named Group.
func InGroup(name string) ConfigureArgumentFunc {
	return func(a *Argument) { a.Group = name }
}

// ConfigureCommandFunc configures a Command as part of a NewCommand(...)
// call, the command-level counterpart to ConfigureArgumentFunc.
type ConfigureCommandFunc func(*Command)

// WithAbout sets the short description shown in long help.
func WithAbout(about string) ConfigureCommandFunc {
	return func(c *Command) { c.About = about }
}

// WithAuthor sets the author line shown in long help.
func WithAuthor(author string) ConfigureCommandFunc {
	return func(c *Command) { c.Author = author }
}

// WithVersion sets the string printed by --version/-v.
func WithVersion(version string) ConfigureCommandFunc {
	return func(c *Command) { c.Version = version }
}

// WithAfterHelp sets a block appended verbatim after the aligned
// sections in long help.
func WithAfterHelp(text string) ConfigureCommandFunc {
	return func(c *Command) { c.AfterHelp = text }
}

// WithCustomUsage installs a usage string substituted verbatim for
// everything from the binary name onward (spec §4.5).
func WithCustomUsage(usage string) ConfigureCommandFunc {
	return func(c *Command) { c.SetUsage(usage) }
}

// WithArg registers an Argument built inline.
func WithArg(a *Argument) ConfigureCommandFunc {
	return func(c *Command) { c.AddArgument(a) }
}

// WithPositional registers a positional Argument, assigning the next
// free index when a has none.
func WithPositional(a *Argument) ConfigureCommandFunc {
	return func(c *Command) { c.AddPositional(a) }
}

// WithGroup registers a Group.
func WithGroup(g *Group) ConfigureCommandFunc {
	return func(c *Command) { c.AddGroup(g) }
}

// WithSubcommand registers a nested Command.
func WithSubcommand(sub *Command) ConfigureCommandFunc {
	return func(c *Command) { c.AddSubcommand(sub) }
}

// Configure applies additional ConfigureCommandFunc(s) to an
// already-built Command.
func (c *Command) Configure(configs ...ConfigureCommandFunc) *Command {
	for _, cfg := range configs {
		cfg(c)
	}
	return c
}

// NewApp is a convenience constructor mirroring NewCommand, kept
// separate so call sites reading top-level app construction versus
// nested subcommand construction stay visually distinct, the way
// napalu-goopt separates NewCommand (fluentCommand.go) from CmdLineOption
// construction (fluentCmdLine.go).
func NewApp(name string, configs ...ConfigureCommandFunc) *Command {
	app := NewCommand(name)
	for _, cfg := range configs {
		cfg(app)
	}
	return app
}
