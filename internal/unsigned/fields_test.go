package unsigned

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetField(t *testing.T) {
	tests := []struct {
		name     string
		doc      AssertionDocument
		path     string
		value    any
		expected AssertionDocument
	}{
		{
			name:     "top-level key",
			doc:      AssertionDocument{},
			path:     "displayHtml",
			value:    "<p>hi</p>",
			expected: AssertionDocument{"displayHtml": "<p>hi</p>"},
		},
		{
			name:  "creates intermediate objects",
			doc:   AssertionDocument{},
			path:  "credentialSubject.degree.name",
			value: "BSc",
			expected: AssertionDocument{
				"credentialSubject": map[string]any{
					"degree": map[string]any{"name": "BSc"},
				},
			},
		},
		{
			name:  "preserves sibling keys",
			doc:   AssertionDocument{"credentialSubject": map[string]any{"id": "did:example:456"}},
			path:  "credentialSubject.grade",
			value: "A",
			expected: AssertionDocument{
				"credentialSubject": map[string]any{
					"id":    "did:example:456",
					"grade": "A",
				},
			},
		},
		{
			name:     "overwrites terminal value",
			doc:      AssertionDocument{"issuanceDate": "old"},
			path:     "issuanceDate",
			value:    "new",
			expected: AssertionDocument{"issuanceDate": "new"},
		},
		{
			name:  "grows arrays with nil padding",
			doc:   AssertionDocument{},
			path:  "evidence[2].id",
			value: "urn:x:1",
			expected: AssertionDocument{
				"evidence": []any{nil, nil, map[string]any{"id": "urn:x:1"}},
			},
		},
		{
			name:  "writes into existing array",
			doc:   AssertionDocument{"evidence": []any{"keep", "replace"}},
			path:  "evidence[1]",
			value: "replaced",
			expected: AssertionDocument{
				"evidence": []any{"keep", "replaced"},
			},
		},
		{
			name:  "nested array of arrays",
			doc:   AssertionDocument{},
			path:  "grid[1][0]",
			value: "x",
			expected: AssertionDocument{
				"grid": []any{nil, []any{"x"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetField(tt.doc, tt.path, tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestSetFieldInvalidPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "empty segment", path: "a..b"},
		{name: "trailing dot", path: "a."},
		{name: "unterminated index", path: "a[1"},
		{name: "non-numeric index", path: "a[x]"},
		{name: "negative index", path: "a[-1]"},
		{name: "root index", path: "[0].a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SetField(AssertionDocument{}, tt.path, "v")
			require.Error(t, err)
		})
	}
}
