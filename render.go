package clap

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const defaultTermWidth = 80

// terminalWidth returns the current stdout width, falling back to
// defaultTermWidth when not attached to a terminal (e.g. piped output in
// tests), the same fallback util/terminal.go's goopt sibling performs
// with golang.org/x/term.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// Usage renders the single USAGE line for c (spec §4.5). If a custom
// usage string was installed via SetUsage, it is substituted verbatim
// for everything from the binary name onward.
func (c *Command) Usage() string {
	if c.customUsage != "" {
		return c.customUsage
	}

	var b strings.Builder
	b.WriteString(c.binName())

	if c.flags.Len() > 0 {
		b.WriteString(" [FLAGS]")
	}

	if c.options.Len() > 0 {
		b.WriteByte(' ')
		b.WriteString(c.optionsUsageFragment())
	}

	if c.positionals.Len() > 0 {
		b.WriteByte(' ')
		b.WriteString(c.positionalsUsageFragment())
	}

	if frag := c.requiredGroupsUsageFragment(); frag != "" {
		b.WriteByte(' ')
		b.WriteString(frag)
	}

	if c.subcommands.Len() > 0 {
		b.WriteString(" [SUBCOMMANDS]")
	}

	return b.String()
}

func (c *Command) optionsUsageFragment() string {
	total := c.options.Len()
	var req []string
	for _, name := range c.sortedOptionNames() {
		a, _ := c.options.Get(name)
		if a.Required {
			req = append(req, a.displayName())
		}
	}
	switch {
	case len(req) == 0:
		return "[OPTIONS]"
	case len(req) == total:
		return strings.Join(req, " ")
	default:
		return "[OPTIONS] " + strings.Join(req, " ")
	}
}

func (c *Command) positionalsUsageFragment() string {
	total := c.positionals.Len()
	var req []string
	for pair := c.positionals.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Required {
			req = append(req, pair.Value.displayName())
		}
	}
	switch {
	case len(req) == 0:
		return "[POSITIONAL]"
	case len(req) == total:
		return strings.Join(req, " ")
	default:
		return "[POSITIONAL] " + strings.Join(req, " ")
	}
}

// requiredGroupsUsageFragment renders one bracketed, "|"-joined fragment
// per required Group, members shown in their formatted display form
// (spec §4.5).
func (c *Command) requiredGroupsUsageFragment() string {
	var frags []string
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		g := pair.Value
		if !g.Required {
			continue
		}
		var members []string
		for _, n := range g.Members {
			if a, ok := c.lookupByName(n); ok {
				members = append(members, a.displayName())
			} else {
				members = append(members, n)
			}
		}
		frags = append(frags, "["+strings.Join(members, "|")+"]")
	}
	return strings.Join(frags, " ")
}

// LongHelp renders the full help text: version line, author, about,
// usage, then the four aligned sections (spec §4.5).
func (c *Command) LongHelp() string {
	var b strings.Builder

	if c.Version != "" {
		fmt.Fprintf(&b, "%s %s\n", c.binName(), c.Version)
	}
	if c.Author != "" {
		fmt.Fprintf(&b, "%s\n", c.Author)
	}
	if c.About != "" {
		fmt.Fprintf(&b, "%s\n", wrap(c.About, terminalWidth()))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "USAGE:\n    %s\n", c.Usage())

	if c.flags.Len() > 0 {
		b.WriteString("\nFLAGS:\n")
		b.WriteString(c.renderFlagSection())
	}
	if c.options.Len() > 0 {
		b.WriteString("\nOPTIONS:\n")
		b.WriteString(c.renderOptionSection())
	}
	if c.positionals.Len() > 0 {
		b.WriteString("\nPOSITIONAL:\n")
		b.WriteString(c.renderPositionalSection())
	}
	if c.subcommands.Len() > 0 {
		b.WriteString("\nSUBCOMMANDS:\n")
		b.WriteString(c.renderSubcommandSection())
	}

	if c.AfterHelp != "" {
		b.WriteString("\n")
		b.WriteString(c.AfterHelp)
		b.WriteString("\n")
	}

	return b.String()
}

// columnWidth computes the alignment column from the longest rendered
// name, so a section's help text lines up regardless of individual name
// length (spec §4.5).
func columnWidth(names []string) int {
	w := 0
	for _, n := range names {
		if len(n) > w {
			w = len(n)
		}
	}
	return w
}

func (c *Command) renderFlagSection() string {
	names := c.sortedFlagNames()
	display := make([]string, len(names))
	for i, n := range names {
		a, _ := c.flags.Get(n)
		display[i] = flagOrOptionDisplay(a)
	}
	w := columnWidth(display)
	var b strings.Builder
	for i, n := range names {
		a, _ := c.flags.Get(n)
		fmt.Fprintf(&b, "    %-*s  %s\n", w, display[i], a.Help)
		_ = i
	}
	return b.String()
}

func (c *Command) renderOptionSection() string {
	names := c.sortedOptionNames()
	display := make([]string, len(names))
	for i, n := range names {
		a, _ := c.options.Get(n)
		display[i] = flagOrOptionDisplay(a)
	}
	w := columnWidth(display)
	var b strings.Builder
	for i, n := range names {
		a, _ := c.options.Get(n)
		fmt.Fprintf(&b, "    %-*s  %s\n", w, display[i], a.Help)
	}
	return b.String()
}

func (c *Command) renderPositionalSection() string {
	var display []string
	var args []*Argument
	for pair := c.positionals.Oldest(); pair != nil; pair = pair.Next() {
		args = append(args, pair.Value)
		display = append(display, pair.Value.displayName())
	}
	w := columnWidth(display)
	var b strings.Builder
	for i, a := range args {
		fmt.Fprintf(&b, "    %-*s  %s\n", w, display[i], a.Help)
	}
	return b.String()
}

func (c *Command) renderSubcommandSection() string {
	var names []string
	for pair := c.subcommands.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	w := columnWidth(names)
	var b strings.Builder
	for pair := c.subcommands.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "    %-*s  %s\n", w, pair.Key, pair.Value.About)
	}
	return b.String()
}

func flagOrOptionDisplay(a *Argument) string {
	name := a.displayName()
	if a.Short != "" && a.Long != "" {
		name = fmt.Sprintf("-%s, --%s", a.Short, a.Long)
	} else if a.Short != "" {
		name = "-" + a.Short
	}
	if a.Multiple {
		name += "..."
	}
	return name
}

// wrap performs simple greedy word wrapping to width, matching the
// column-aware about/after-help rendering goopt's renderer.go aims for
// without pulling in a full text-layout dependency.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > width {
			b.WriteByte('\n')
			lineLen = 0
		} else if i > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
