package services

import (
	"fmt"
	"regexp"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
	"github.com/tahnau/immich-smart-albums/internal/logger"
)

// CompiledRule is a filter rule whose path and pattern were compiled
// once for the whole run.
type CompiledRule struct {
	Rule domain.FilterRule

	path  driven.CompiledPath
	regex *regexp.Regexp // nil when the rule only checks presence
}

// Label returns the rule's display label.
func (r CompiledRule) Label() string {
	return r.Rule.Label()
}

// Matches reports whether the asset satisfies the rule. The path must
// select at least one value; when a pattern is present, some selected
// value must contain a match in its string form.
func (r CompiledRule) Matches(asset domain.Asset) bool {
	values := r.path.Evaluate(asset.Raw)
	if len(values) == 0 {
		return false
	}
	if r.regex == nil {
		return true
	}
	for _, v := range values {
		if v == nil {
			continue
		}
		if r.regex.MatchString(valueString(v)) {
			return true
		}
	}
	return false
}

// valueString renders a selected value for pattern matching: strings as
// themselves, everything else through fmt. Decoded JSON numbers and
// booleans come out in their JSON spelling.
func valueString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// FilterService compiles local filter rules and evaluates them against
// asset payloads.
type FilterService struct {
	matcher driven.PathMatcher
}

// NewFilterService creates a new filter service.
func NewFilterService(matcher driven.PathMatcher) *FilterService {
	return &FilterService{matcher: matcher}
}

// Compile compiles each rule's path and pattern. A rule that fails to
// compile is dropped with a warning, so one bad rule does not take the
// whole run down. Patterns match case-insensitively and anywhere in
// the value, in the manner of a regex search.
func (s *FilterService) Compile(rules []domain.FilterRule) []CompiledRule {
	compiled := make([]CompiledRule, 0, len(rules))
	for _, rule := range rules {
		path, err := s.matcher.Compile(rule.Path)
		if err != nil {
			logger.Warn("Dropping filter %q: %v", rule.Label(), err)
			continue
		}

		var re *regexp.Regexp
		if rule.Regex != "" {
			re, err = regexp.Compile("(?i)" + rule.Regex)
			if err != nil {
				logger.Warn("Dropping filter %q: invalid pattern: %v", rule.Label(), err)
				continue
			}
		}

		compiled = append(compiled, CompiledRule{Rule: rule, path: path, regex: re})
	}
	return compiled
}

// Apply evaluates the rules over the pool and returns the IDs of assets
// that pass, with per-rule match counts. With requireAll set an asset
// must satisfy every rule; otherwise one rule is enough.
//
// Every rule is evaluated for every asset so the counts stay honest;
// there is no short-circuit.
func (s *FilterService) Apply(
	pool []domain.Asset, rules []CompiledRule, requireAll bool, role domain.Role,
) (domain.IDSet, []domain.FilterStat) {
	group := domain.SetUnion
	if requireAll {
		group = domain.SetIntersection
	}

	counts := make([]int, len(rules))
	passed := domain.NewIDSet()

	for _, asset := range pool {
		matched := 0
		for i, rule := range rules {
			if rule.Matches(asset) {
				counts[i]++
				matched++
				logger.Debug("Asset %s matched filter %q", asset.ID, rule.Label())
			}
		}
		if requireAll {
			if matched == len(rules) {
				passed.Add(asset.ID)
			}
		} else if matched > 0 {
			passed.Add(asset.ID)
		}
	}

	stats := make([]domain.FilterStat, len(rules))
	for i, rule := range rules {
		stats[i] = domain.FilterStat{
			Label:   rule.Label(),
			Role:    role,
			Group:   group,
			Matched: counts[i],
		}
		logger.Info("Filter %q (%s, %s) matched %d of %d assets",
			rule.Label(), role, group, counts[i], len(pool))
	}
	return passed, stats
}
