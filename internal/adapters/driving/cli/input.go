package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// parseQueries turns the raw values of one query flag into queries.
func parseQueries(category domain.Category, raws []string, defaultSmartLimit int) ([]domain.Query, error) {
	queries := make([]domain.Query, 0, len(raws))
	for _, raw := range raws {
		q, err := parseQuery(category, raw, defaultSmartLimit)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// parseQuery turns one query argument into a query. Three forms are
// accepted: the path of a .json file holding a JSON object, a literal
// JSON object, or, for smart searches only, free text with an optional
// @N result cap.
func parseQuery(category domain.Category, raw string, defaultSmartLimit int) (domain.Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Query{}, fmt.Errorf("%w: empty %s query", domain.ErrInvalidQuery, category)
	}

	if strings.HasSuffix(raw, ".json") {
		data, err := os.ReadFile(raw)
		if err != nil {
			return domain.Query{}, fmt.Errorf("read query file %s: %w", raw, err)
		}
		payload, err := parseJSONObject(data)
		if err != nil {
			return domain.Query{}, fmt.Errorf("query file %s: %w", raw, err)
		}
		return newQuery(category, payload, filepath.Base(raw), defaultSmartLimit), nil
	}

	if strings.HasPrefix(raw, "{") {
		payload, err := parseJSONObject([]byte(raw))
		if err != nil {
			return domain.Query{}, fmt.Errorf("query %s: %w", raw, err)
		}
		return newQuery(category, payload, raw, defaultSmartLimit), nil
	}

	if category != domain.CategorySmart {
		return domain.Query{}, fmt.Errorf("%w: %s queries must be JSON, got %q",
			domain.ErrInvalidQuery, category, raw)
	}

	text, limit := splitSmartLimit(raw)
	if limit == 0 {
		limit = defaultSmartLimit
	}
	return domain.Query{
		Category:    category,
		Payload:     map[string]any{"query": text},
		ResultLimit: limit,
		Label:       text,
	}, nil
}

// newQuery assembles a query from a parsed payload. A resultLimit key in
// the payload caps the query; smart queries without one get the default
// cap so a broad search does not walk the whole library.
func newQuery(category domain.Category, payload map[string]any, label string, defaultSmartLimit int) domain.Query {
	limit := intFromJSON(payload["resultLimit"])
	if limit == 0 && category == domain.CategorySmart {
		limit = defaultSmartLimit
	}
	return domain.Query{
		Category:    category,
		Payload:     payload,
		ResultLimit: limit,
		Label:       label,
	}
}

// splitSmartLimit splits a smart free-text query from its optional @N
// result cap. The cap must be a trailing number, whitespace around it is
// fine; any other trailing @ stays part of the query text.
func splitSmartLimit(raw string) (string, int) {
	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return raw, 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw[at+1:]))
	if err != nil || n <= 0 {
		return raw, 0
	}
	text := strings.TrimSpace(raw[:at])
	if text == "" {
		return raw, 0
	}
	return text, n
}

// parseFilterGroup turns the raw values of one filter flag into a flat
// rule list.
func parseFilterGroup(raws []string) ([]domain.FilterRule, error) {
	var rules []domain.FilterRule
	for _, raw := range raws {
		parsed, err := parseFilterRules(raw)
		if err != nil {
			return nil, err
		}
		rules = append(rules, parsed...)
	}
	return rules, nil
}

// parseFilterRules turns one filter argument into rules. Three forms
// are accepted: the path of a .json file holding a rule array, a
// literal JSON array, or path:regex shorthand for a single rule. The
// shorthand splits on the first colon, so a path containing a colon
// needs the JSON form; a shorthand without a colon matches on presence
// of the path alone.
func parseFilterRules(raw string) ([]domain.FilterRule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty filter", domain.ErrInvalidFilter)
	}

	if strings.HasSuffix(raw, ".json") {
		data, err := os.ReadFile(raw)
		if err != nil {
			return nil, fmt.Errorf("read filter file %s: %w", raw, err)
		}
		rules, err := parseRuleArray(data)
		if err != nil {
			return nil, fmt.Errorf("filter file %s: %w", raw, err)
		}
		return rules, nil
	}

	if strings.HasPrefix(raw, "[") {
		rules, err := parseRuleArray([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", raw, err)
		}
		return rules, nil
	}

	path, regex, _ := strings.Cut(raw, ":")
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: want a rule file, a JSON array or path:regex, got %q",
			domain.ErrInvalidFilter, raw)
	}
	return []domain.FilterRule{{Path: path, Regex: regex}}, nil
}

// parseRuleArray decodes a JSON array of filter rule objects.
func parseRuleArray(data []byte) ([]domain.FilterRule, error) {
	val, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
	}
	items, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array of rules", domain.ErrInvalidFilter)
	}

	rules := make([]domain.FilterRule, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: rule %d is not an object", domain.ErrInvalidFilter, i+1)
		}
		rule := domain.FilterRule{
			Path:        stringFromJSON(obj["path"]),
			Regex:       stringFromJSON(obj["regex"]),
			Description: stringFromJSON(obj["description"]),
		}
		if rule.Path == "" {
			return nil, fmt.Errorf("%w: rule %d has no path", domain.ErrInvalidFilter, i+1)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// parseJSONObject decodes data into a JSON object.
func parseJSONObject(data []byte) (map[string]any, error) {
	val, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	obj, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrInvalidQuery)
	}
	return obj, nil
}

// intFromJSON coerces a decoded JSON value to an int. ojg yields int64
// for whole numbers, other decoders use float64.
func intFromJSON(val any) int {
	switch v := val.(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringFromJSON(val any) string {
	s, _ := val.(string)
	return s
}
