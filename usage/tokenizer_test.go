package usage_test

import (
	"testing"

	"github.com/arglex/clap/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeShortLongNameHelp(t *testing.T) {
	tokens, err := usage.Tokenize(`-c --config <cfg> 'Sets a custom config file'`)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, usage.KindShort, tokens[0].Kind)
	assert.Equal(t, "c", tokens[0].Text)
	assert.Equal(t, usage.KindLong, tokens[1].Kind)
	assert.Equal(t, "config", tokens[1].Text)
	assert.Equal(t, usage.KindName, tokens[2].Kind)
	assert.Equal(t, "cfg", tokens[2].Text)
	assert.True(t, tokens[2].Required)
	assert.Equal(t, usage.KindHelp, tokens[3].Kind)
	assert.Equal(t, "Sets a custom config file", tokens[3].Text)
}

func TestTokenizeOptionalName(t *testing.T) {
	tokens, err := usage.Tokenize(`--output [file]`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, usage.KindName, tokens[1].Kind)
	assert.False(t, tokens[1].Required)
}

func TestTokenizeMultipleMarker(t *testing.T) {
	tokens, err := usage.Tokenize(`<input>...`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, usage.KindName, tokens[0].Kind)
	assert.Equal(t, usage.KindMultiple, tokens[1].Kind)
}

func TestTokenizePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = usage.Tokenize("   ")
	})
}

func TestAssembleOptionTakesValue(t *testing.T) {
	tokens, err := usage.Tokenize(`-c --config <cfg> 'Sets a custom config file'`)
	require.NoError(t, err)
	parsed, err := usage.Assemble(tokens)
	require.NoError(t, err)
	assert.Equal(t, "cfg", parsed.Name)
	assert.Equal(t, "c", parsed.Short)
	assert.Equal(t, "config", parsed.Long)
	assert.True(t, parsed.Required)
	assert.True(t, parsed.TakesValue)
	assert.Equal(t, "Sets a custom config file", parsed.Help)
}

func TestAssembleLongOnlyAdoptsLongAsName(t *testing.T) {
	tokens, err := usage.Tokenize(`--verbose 'Enable verbose output'`)
	require.NoError(t, err)
	parsed, err := usage.Assemble(tokens)
	require.NoError(t, err)
	assert.Equal(t, "verbose", parsed.Name)
	assert.False(t, parsed.TakesValue)
}

func TestAssemblePositionalMultiple(t *testing.T) {
	tokens, err := usage.Tokenize(`<files>... 'Input files to process'`)
	require.NoError(t, err)
	parsed, err := usage.Assemble(tokens)
	require.NoError(t, err)
	assert.Equal(t, "files", parsed.Name)
	assert.True(t, parsed.Required)
	assert.True(t, parsed.Multiple)
	assert.False(t, parsed.TakesValue)
}

func TestAssembleOptionalOutputName(t *testing.T) {
	tokens, err := usage.Tokenize(`--output [out] 'Write output here'`)
	require.NoError(t, err)
	parsed, err := usage.Assemble(tokens)
	require.NoError(t, err)
	assert.Equal(t, "out", parsed.Name)
	assert.False(t, parsed.Required)
	assert.True(t, parsed.TakesValue)
}
