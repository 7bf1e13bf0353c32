// Command clapdemo is a thin shell exercising the clap engine end to end:
// a grep-like root command with a nested "config" subcommand, built
// entirely through the fluent builder surface.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arglex/clap"
)

func buildApp() *clap.Command {
	pattern := clap.NewArg("pattern",
		clap.AtIndex(1),
		clap.Required(),
		clap.WithHelp("pattern to search for"),
	)
	files := clap.NewArg("files",
		clap.AtIndex(2),
		clap.Multi(),
		clap.WithHelp("files to search; reads stdin when omitted"),
	)
	ignoreCase := clap.NewArg("ignore-case",
		clap.WithShort("i"),
		clap.WithLong("ignore-case"),
		clap.WithHelp("case-insensitive match"),
	)
	count, err := clap.FromUsage(
		`-c --count 'Print only a count of matching lines'`,
		clap.ConflictsWith("invert"),
	)
	if err != nil {
		panic(err)
	}
	invert := clap.NewArg("invert",
		clap.WithShort("v"),
		clap.WithLong("invert-match"),
		clap.WithHelp("select non-matching lines"),
		clap.ConflictsWith("count"),
	)
	colorMode := clap.NewArg("color",
		clap.WithLong("color"),
		clap.TakesValue(),
		clap.PossibleValues("always", "never", "auto"),
		clap.WithHelp("control match highlighting"),
	)

	configShow := clap.NewArg("key",
		clap.AtIndex(1),
		clap.WithHelp("configuration key to print; prints all when omitted"),
	)
	configCmd := clap.NewApp("config",
		clap.WithAbout("inspect clapdemo's configuration"),
		clap.WithPositional(configShow),
	)

	app := clap.NewApp("clapdemo",
		clap.WithAbout("search files for a pattern, clap-engine style"),
		clap.WithAuthor("arglex"),
		clap.WithVersion("1.0.0"),
		clap.WithPositional(pattern),
		clap.WithPositional(files),
		clap.WithArg(ignoreCase),
		clap.WithArg(count),
		clap.WithArg(invert),
		clap.WithArg(colorMode),
		clap.WithSubcommand(configCmd),
	)
	return app
}

func main() {
	app := buildApp()
	result, err := app.Parse(os.Args)

	switch {
	case errors.Is(err, clap.ErrHelpRequested):
		fmt.Println(app.LongHelp())
		os.Exit(0)
	case errors.Is(err, clap.ErrVersionRequested):
		fmt.Printf("%s %s\n", app.Name, app.Version)
		os.Exit(0)
	case err != nil:
		var perr *clap.ParseError
		if errors.As(err, &perr) {
			clap.NewStderrReporter().Report(perr)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}

	runSearch(result)
}

func runSearch(m *clap.MatchResult) {
	if m.Subcommand != nil && m.Subcommand.Name == "config" {
		key, ok := m.Subcommand.Matches.Value("key")
		if ok {
			fmt.Println("config key:", key)
		} else {
			fmt.Println("config: (no key given, would print all settings)")
		}
		return
	}

	pattern, _ := m.Value("pattern")
	files := m.Values("files")
	fmt.Printf("searching for %q in %v (ignore-case=%v count=%v invert=%v color=%s)\n",
		pattern, files, m.Is("ignore-case"), m.Is("count"), m.Is("invert"), firstOr(m.Values("color"), "auto"))
}

func firstOr(vals []string, fallback string) string {
	if len(vals) == 0 {
		return fallback
	}
	return vals[0]
}
