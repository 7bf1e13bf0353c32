package clap

// category classifies an Argument into one of three disjoint stores.
// Derived once at registration time (Command.AddArgument); never
// re-derived later.
type category int

const (
	categoryFlag category = iota
	categoryOption
	categoryPositional
)

// Argument describes one flag, option or positional argument. Which of the
// three it is, is derived from which fields are set (Index implies
// positional; Short/Long imply flag or option depending on TakesValue).
type Argument struct {
	Name           string
	Short          string
	Long           string
	Help           string
	Required       bool
	TakesValue     bool
	Index          *int
	Multiple       bool
	Blacklist      []string
	Requires       []string
	PossibleValues []string
	Group          string
}

// category derives the disjoint classification for this declaration. It
// must only be called after AddArgument has rejected contradictions, so it
// never needs to report an error.
func (a *Argument) category() category {
	if a.Index != nil {
		return categoryPositional
	}
	if a.TakesValue {
		return categoryOption
	}
	return categoryFlag
}

// displayName renders the argument the way USAGE/help text shows it: the
// long/short form for flags and options, or the bracketed name (with a
// "..." suffix when Multiple) for positionals.
func (a *Argument) displayName() string {
	switch a.category() {
	case categoryPositional:
		name := a.Name
		if a.Required {
			name = "<" + name + ">"
		} else {
			name = "[" + name + "]"
		}
		if a.Multiple {
			name += "..."
		}
		return name
	default:
		if a.Long != "" {
			return "--" + a.Long
		}
		return "-" + a.Short
	}
}

// hasPossibleValue reports whether value is an accepted value for this
// argument, or true when no enumerated set was declared.
func (a *Argument) hasPossibleValue(value string) bool {
	if len(a.PossibleValues) == 0 {
		return true
	}
	for _, v := range a.PossibleValues {
		if v == value {
			return true
		}
	}
	return false
}
