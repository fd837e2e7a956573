package unsigned

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldSpec names a location inside the assertion document and the value to
// place there. Paths use dot and bracket notation, e.g. "credentialSubject.degree"
// or "evidence[0].id".
type FieldSpec struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type fieldsPayload struct {
	Fields []FieldSpec `json:"fields"`
}

type pathStep struct {
	key     string
	index   int
	isIndex bool
}

// SetField places value at path inside doc, creating intermediate objects
// and arrays as needed and overwriting whatever sits at the terminal
// location. Arrays are grown and nil-padded up to the addressed index. The
// returned document is the authoritative result; doc may be modified in
// place where containers already existed.
func SetField(doc AssertionDocument, path string, value any) (AssertionDocument, error) {
	steps, err := parseFieldPath(path)
	if err != nil {
		return nil, err
	}

	root := place(map[string]any(doc), steps, value)
	m, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field path %q: document root is not an object", path)
	}
	return AssertionDocument(m), nil
}

func place(container any, steps []pathStep, value any) any {
	if len(steps) == 0 {
		return value
	}

	step := steps[0]
	if step.isIndex {
		slice, _ := container.([]any)
		for len(slice) <= step.index {
			slice = append(slice, nil)
		}
		slice[step.index] = place(slice[step.index], steps[1:], value)
		return slice
	}

	m, ok := container.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	m[step.key] = place(m[step.key], steps[1:], value)
	return m
}

func parseFieldPath(path string) ([]pathStep, error) {
	if path == "" {
		return nil, fmt.Errorf("empty field path")
	}

	var steps []pathStep
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, fmt.Errorf("field path %q: empty segment", path)
		}

		key := segment
		var brackets string
		if i := strings.IndexByte(segment, '['); i >= 0 {
			key, brackets = segment[:i], segment[i:]
		}
		if key != "" {
			steps = append(steps, pathStep{key: key})
		}

		for brackets != "" {
			end := strings.IndexByte(brackets, ']')
			if brackets[0] != '[' || end < 0 {
				return nil, fmt.Errorf("field path %q: malformed index in %q", path, segment)
			}
			index, err := strconv.Atoi(brackets[1:end])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("field path %q: invalid index %q", path, brackets[1:end])
			}
			steps = append(steps, pathStep{index: index, isIndex: true})
			brackets = brackets[end+1:]
		}
	}

	if steps[0].isIndex {
		return nil, fmt.Errorf("field path %q: document root is addressed by key, not index", path)
	}
	return steps, nil
}
