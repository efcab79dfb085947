package jsonpath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var record any
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	return record
}

func TestMatcherCompile(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{
			name: "simple child path",
			expr: "$.exifInfo.city",
		},
		{
			name: "path without root prefix",
			expr: "exifInfo.city",
		},
		{
			name: "wildcard over array",
			expr: "$.people[*].name",
		},
		{
			name: "filter expression",
			expr: "$.people[?(@.name == 'Alice')]",
		},
		{
			name:    "unterminated bracket",
			expr:    "$.people[",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := m.Compile(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, compiled)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, compiled)
		})
	}
}

func TestCompiledPathEvaluate(t *testing.T) {
	m := NewMatcher()
	record := decode(t, `{
		"id": "a1",
		"exifInfo": {"city": "Helsinki", "country": "Finland", "iso": 400},
		"people": [
			{"name": "Alice"},
			{"name": "Bob"}
		],
		"isFavorite": true
	}`)

	tests := []struct {
		name     string
		expr     string
		expected []any
	}{
		{
			name:     "scalar string",
			expr:     "$.exifInfo.city",
			expected: []any{"Helsinki"},
		},
		{
			name:     "scalar number",
			expr:     "$.exifInfo.iso",
			expected: []any{float64(400)},
		},
		{
			name:     "scalar bool",
			expr:     "$.isFavorite",
			expected: []any{true},
		},
		{
			name:     "wildcard collects all names",
			expr:     "$.people[*].name",
			expected: []any{"Alice", "Bob"},
		},
		{
			name:     "missing key yields nothing",
			expr:     "$.exifInfo.lens",
			expected: nil,
		},
		{
			name:     "missing branch yields nothing",
			expr:     "$.smartInfo.tags[*]",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := m.Compile(tt.expr)
			require.NoError(t, err)

			got := compiled.Evaluate(record)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestCompiledPathEvaluateNilRecord(t *testing.T) {
	m := NewMatcher()
	compiled, err := m.Compile("$.exifInfo.city")
	require.NoError(t, err)

	assert.Empty(t, compiled.Evaluate(nil))
}
