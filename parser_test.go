package clap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *Command {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "verbose", Short: "v", Long: "verbose"})
	c.AddArgument(&Argument{Name: "output", Short: "o", Long: "output", TakesValue: true})
	idx := 1
	c.AddArgument(&Argument{Name: "file", Index: &idx, Required: true})
	return c
}

func TestParseLongFlag(t *testing.T) {
	c := newTestApp()
	m, err := c.Parse([]string{"app", "--verbose", "input.txt"})
	require.NoError(t, err)
	assert.True(t, m.Is("verbose"))
	assert.Equal(t, uint(1), m.Occurrences("verbose"))
}

func TestParseShortFlag(t *testing.T) {
	c := newTestApp()
	m, err := c.Parse([]string{"app", "-v", "input.txt"})
	require.NoError(t, err)
	assert.True(t, m.Is("verbose"))
}

func TestParseClusteredShortFlags(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "a", Short: "a"})
	c.AddArgument(&Argument{Name: "b", Short: "b"})
	c.AddArgument(&Argument{Name: "c", Short: "c"})

	m, err := c.Parse([]string{"app", "-abc"})
	require.NoError(t, err)
	assert.True(t, m.Is("a"))
	assert.True(t, m.Is("b"))
	assert.True(t, m.Is("c"))
}

func TestParseClusteredShortFlagsRejectsOption(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "a", Short: "a"})
	c.AddArgument(&Argument{Name: "out", Short: "o", TakesValue: true})

	_, err := c.Parse([]string{"app", "-ao", "val"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArgument))
}

func TestParseLongOptionInlineValue(t *testing.T) {
	c := newTestApp()
	m, err := c.Parse([]string{"app", "--output=result.txt", "input.txt"})
	require.NoError(t, err)
	v, ok := m.Value("output")
	require.True(t, ok)
	assert.Equal(t, "result.txt", v)
}

func TestParseLongOptionSeparateValue(t *testing.T) {
	c := newTestApp()
	m, err := c.Parse([]string{"app", "--output", "result.txt", "input.txt"})
	require.NoError(t, err)
	v, _ := m.Value("output")
	assert.Equal(t, "result.txt", v)
}

func TestParseShortOptionSeparateValue(t *testing.T) {
	c := newTestApp()
	m, err := c.Parse([]string{"app", "-o", "result.txt", "input.txt"})
	require.NoError(t, err)
	v, _ := m.Value("output")
	assert.Equal(t, "result.txt", v)
}

func TestParseMissingValueForOption(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app", "--output"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
}

func TestParseMissingInlineValueForOption(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app", "--output=", "input.txt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
}

func TestParseEndOfOptionsSentinel(t *testing.T) {
	c := NewCommand("app")
	idx := 1
	c.AddArgument(&Argument{Name: "file", Index: &idx})
	m, err := c.Parse([]string{"app", "--", "-v"})
	require.NoError(t, err)
	v, _ := m.Value("file")
	assert.Equal(t, "-v", v)
}

func TestParseLoneDashIsPositional(t *testing.T) {
	c := NewCommand("app")
	idx := 1
	c.AddArgument(&Argument{Name: "file", Index: &idx})
	m, err := c.Parse([]string{"app", "-"})
	require.NoError(t, err)
	v, _ := m.Value("file")
	assert.Equal(t, "-", v)
}

func TestParseUnknownArgument(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app", "--bogus", "input.txt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArgument))
}

func TestParseMissingRequired(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))
}

func TestParseRepeatedNonMultipleRejected(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app", "-v", "-v", "input.txt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepeated))
}

func TestParseMultiplePositionalCollectsRest(t *testing.T) {
	c := NewCommand("app")
	idx := 1
	c.AddArgument(&Argument{Name: "files", Index: &idx, Multiple: true})
	m, err := c.Parse([]string{"app", "a.txt", "b.txt", "c.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, m.Values("files"))
	assert.Equal(t, uint(3), m.Occurrences("files"))
}

func TestParsePossibleValuesRejectsUnknownValue(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "color", Long: "color", TakesValue: true, PossibleValues: []string{"red", "blue"}})
	_, err := c.Parse([]string{"app", "--color=green"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownValue))
}

func TestParseConflictingArgumentsRejected(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "count", Long: "count", Blacklist: []string{"invert"}})
	c.AddArgument(&Argument{Name: "invert", Long: "invert"})
	_, err := c.Parse([]string{"app", "--count", "--invert"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestParseRequiresPullsInDependency(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "encrypt", Long: "encrypt", Requires: []string{"key"}})
	c.AddArgument(&Argument{Name: "key", Long: "key", TakesValue: true})
	_, err := c.Parse([]string{"app", "--encrypt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))

	m, err := c.Parse([]string{"app", "--encrypt", "--key", "secret"})
	require.NoError(t, err)
	assert.True(t, m.Is("encrypt"))
	v, _ := m.Value("key")
	assert.Equal(t, "secret", v)
}

func TestParseRequiredGroupSatisfiedByEitherMember(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "fast", Long: "fast", Group: "mode"})
	c.AddArgument(&Argument{Name: "slow", Long: "slow", Group: "mode"})
	c.AddGroup(&Group{Name: "mode", Required: true})

	_, err := c.Parse([]string{"app"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))

	m, err := c.Parse([]string{"app", "--fast"})
	require.NoError(t, err)
	assert.True(t, m.Is("fast"))
}

func TestParseGroupMembersConflictWithEachOther(t *testing.T) {
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "fast", Long: "fast", Group: "mode"})
	c.AddArgument(&Argument{Name: "slow", Long: "slow", Group: "mode"})
	c.AddGroup(&Group{Name: "mode"})

	_, err := c.Parse([]string{"app", "--fast", "--slow"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestParseRequiredDemotedByOwnBlacklistMatch(t *testing.T) {
	// a is required but conflicts with b; if b is supplied, a's
	// own required slot (and anything a itself requires) is demoted.
	c := NewCommand("app")
	c.AddArgument(&Argument{Name: "a", Long: "a", TakesValue: true, Required: true, Blacklist: []string{"b"}, Requires: []string{"c"}})
	c.AddArgument(&Argument{Name: "b", Long: "b"})
	c.AddArgument(&Argument{Name: "c", Long: "c"})

	m, err := c.Parse([]string{"app", "--b"})
	require.NoError(t, err)
	assert.True(t, m.Is("b"))
	assert.False(t, m.Is("a"))
	assert.False(t, m.Is("c"))
}

func TestParseHelpFlagShortCircuits(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app", "--help"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHelpRequested))
}

func TestParseVersionFlagShortCircuits(t *testing.T) {
	c := newTestApp()
	c.Version = "1.2.3"
	_, err := c.Parse([]string{"app", "--version"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionRequested))
}

func TestParseSubcommandRecursesIndependentSchema(t *testing.T) {
	root := NewCommand("app")
	sub := NewCommand("build")
	sub.AddArgument(&Argument{Name: "release", Long: "release"})
	root.AddSubcommand(sub)

	m, err := root.Parse([]string{"app", "build", "--release"})
	require.NoError(t, err)
	require.NotNil(t, m.Subcommand)
	assert.Equal(t, "build", m.Subcommand.Name)
	assert.True(t, m.Subcommand.Matches.Is("release"))
}

func TestParseAutoHelpSubcommand(t *testing.T) {
	root := NewCommand("app")
	root.AddSubcommand(NewCommand("build"))

	_, err := root.Parse([]string{"app", "help"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHelpRequested))
}

func TestParseErrorCarriesUsageAndCommand(t *testing.T) {
	c := newTestApp()
	_, err := c.Parse([]string{"app"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "app", perr.Command)
	assert.NotEmpty(t, perr.Usage)
}
