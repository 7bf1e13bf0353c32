package clap

import (
	"strings"
	"testing"
)

// FuzzParseTokens feeds arbitrary whitespace-delimited token streams into
// a small fixed schema and asserts only the invariant that must always
// hold regardless of input: Parse never panics and always returns either
// a MatchResult or an error, never both nil.
func FuzzParseTokens(f *testing.F) {
	f.Add("-a2hello")
	f.Add("--long")
	f.Add("-vxffile")
	f.Add("-- value")
	f.Add("   --spaces ok   ")
	f.Add("0")
	f.Add("-")
	f.Add("--output=")
	f.Add("-abc")
	f.Add("--unknown --also-unknown")

	f.Fuzz(func(t *testing.T, raw string) {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return
		}

		c := NewCommand("fuzz")
		c.AddArgument(&Argument{Name: "a", Short: "a"})
		c.AddArgument(&Argument{Name: "output", Short: "o", Long: "output", TakesValue: true})
		idx := 1
		c.AddArgument(&Argument{Name: "file", Index: &idx, Multiple: true})

		m, err := c.Parse(append([]string{"fuzz"}, fields...))
		if m == nil && err == nil {
			t.Fatal("Parse returned neither a result nor an error")
		}
	})
}
