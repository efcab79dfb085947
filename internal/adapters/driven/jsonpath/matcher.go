// Package jsonpath provides a PathMatcher adapter backed by the ojg
// JSONPath implementation.
package jsonpath

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
)

// Ensure Matcher implements the interface.
var _ driven.PathMatcher = (*Matcher)(nil)

// Matcher compiles JSONPath expressions.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Compile parses the expression into an evaluable path.
func (m *Matcher) Compile(expr string) (driven.CompiledPath, error) {
	parsed, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("jsonpath: parse %q: %w", expr, err)
	}
	return &compiledPath{expr: parsed}, nil
}

// compiledPath wraps a parsed jp.Expr. Get walks the record without
// mutating the expression, so one compiledPath can serve concurrent
// evaluations.
type compiledPath struct {
	expr jp.Expr
}

// Evaluate applies the expression to a decoded JSON record.
func (p *compiledPath) Evaluate(record any) []any {
	return p.expr.Get(record)
}
