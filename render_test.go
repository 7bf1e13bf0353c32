package clap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildRenderTestApp() *Command {
	c := NewCommand("tool")
	c.About = "a test tool"
	c.AddArgument(&Argument{Name: "verbose", Short: "v", Long: "verbose", Help: "be noisy"})
	c.AddArgument(&Argument{Name: "output", Short: "o", Long: "output", TakesValue: true, Required: true, Help: "output path"})
	idx := 1
	c.AddArgument(&Argument{Name: "input", Index: &idx, Required: true, Help: "input file"})
	return c
}

func TestUsageIncludesRequiredOptionAndPositional(t *testing.T) {
	c := buildRenderTestApp()
	u := c.Usage()
	assert.Contains(t, u, "tool")
	assert.Contains(t, u, "--output")
	assert.Contains(t, u, "<input>")
}

func TestUsageHonorsCustomUsage(t *testing.T) {
	c := buildRenderTestApp()
	c.SetUsage("<custom usage text>")
	assert.Equal(t, "<custom usage text>", c.Usage())
}

func TestLongHelpListsSections(t *testing.T) {
	c := buildRenderTestApp()
	h := c.LongHelp()
	assert.Contains(t, h, "a test tool")
	assert.Contains(t, h, "USAGE:")
	assert.Contains(t, h, "FLAGS:")
	assert.Contains(t, h, "OPTIONS:")
	assert.Contains(t, h, "POSITIONAL:")
	assert.Contains(t, h, "be noisy")
}

func TestLongHelpOmitsEmptySections(t *testing.T) {
	c := NewCommand("bare")
	h := c.LongHelp()
	assert.NotContains(t, h, "FLAGS:")
	assert.NotContains(t, h, "OPTIONS:")
	assert.NotContains(t, h, "POSITIONAL:")
}

func TestWrapBreaksLongLines(t *testing.T) {
	text := "one two three four five six seven eight"
	wrapped := wrap(text, 10)
	lines := strings.Split(wrapped, "\n")
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, text, strings.Join(strings.Fields(wrapped), " "))
}
