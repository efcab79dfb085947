package driven

// PathMatcher compiles JSONPath expressions for evaluation against
// asset payloads.
type PathMatcher interface {
	// Compile parses the expression. Returns an error if the syntax is
	// invalid.
	Compile(expr string) (CompiledPath, error)
}

// CompiledPath is a parsed JSONPath expression ready for evaluation.
// Implementations must be safe for concurrent use.
type CompiledPath interface {
	// Evaluate applies the expression to a decoded JSON record and
	// returns every value it selects. A path that matches nothing
	// returns an empty slice.
	Evaluate(record any) []any
}
