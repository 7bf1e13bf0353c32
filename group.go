package clap

// Group is a named set of argument names used to express collective
// required/conflict semantics: "exactly one of" (Required) and "any of
// these conflicts" (Conflicts), plus a group-level Requires edge.
//
// A required Group's own name, Requires and Conflicts are added to the
// required/blacklist sets at the start of every parse (computeBaseline in
// parser.go), before any token is read, because group-level constraints
// are unconditional rather than triggered by a match.
type Group struct {
	Name      string
	Members   []string
	Required  bool
	Requires  []string
	Conflicts []string
}

func (g *Group) hasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}
