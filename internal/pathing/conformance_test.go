package pathing

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/itchyny/gojq"
	"github.com/theory/jsonpath"
	"github.com/tidwall/gjson"

	"github.com/jacoelho/jdoc/internal/parser"
	"github.com/jacoelho/jdoc/internal/value"
)

const conformanceDocument = `{
	"store": {
		"book": [
			{"title": "Sayings of the Century", "price": 8.95, "tags": ["reference"]},
			{"title": "Sword of Honour", "price": 12.99, "tags": []},
			{"title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99}
		],
		"bicycle": {"color": "red", "price": 399, "gears": null, "electric": false}
	},
	"0": "numeric key",
	"dup": "first",
	"dup": "second"
}`

var conformancePaths = []string{
	"store",
	"store.book",
	"store.book.0",
	"store.book.0.title",
	"store.book.2.isbn",
	"store.book.1.tags",
	"store.book.0.tags.0",
	"store.book.3",
	"store.book.1.isbn",
	"store.bicycle.color",
	"store.bicycle.gears",
	"store.bicycle.electric",
	"store.bicycle.price.value",
	"store.missing",
	"0",
	"dup",
	"nothing.at.all",
}

// toAny mirrors encoding/json decoding with UseNumber, where duplicate keys
// keep the last value.
func toAny(v value.Value) any {
	switch node := v.(type) {
	case value.Null:
		return nil
	case value.Boolean:
		return bool(node)
	case value.Number:
		return json.Number(node)
	case value.String:
		return string(node)
	case *value.Array:
		out := make([]any, len(node.Elements))
		for i, element := range node.Elements {
			out[i] = toAny(element)
		}
		return out
	case *value.Object:
		out := make(map[string]any, len(node.Members))
		for _, member := range node.Members {
			out[member.Key] = toAny(member.Value)
		}
		return out
	}
	return nil
}

// normalizedQuery renders components as a JSONPath normalized path, using
// index selectors only where the decoded data holds an array.
func normalizedQuery(data any, components []string) string {
	var b strings.Builder
	b.WriteString("$")

	current := data
	for _, component := range components {
		if arr, ok := current.([]any); ok {
			if index, ok := ParseIndex(component); ok && component != "" {
				b.WriteString("[" + strconv.Itoa(index) + "]")
				if index < len(arr) {
					current = arr[index]
				} else {
					current = nil
				}
				continue
			}
		}

		b.WriteString("[" + strconv.Quote(component) + "]")
		if obj, ok := current.(map[string]any); ok {
			current = obj[component]
		} else {
			current = nil
		}
	}
	return b.String()
}

func TestResolve_MatchesJSONPath(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse([]byte(conformanceDocument))
	if err != nil {
		t.Fatalf("parser.Parse() error = %v", err)
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(conformanceDocument)))
	decoder.UseNumber()
	var data any
	if err := decoder.Decode(&data); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for _, text := range conformancePaths {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", text, err)
			}

			query := normalizedQuery(data, p.Components)
			compiled, err := jsonpath.Parse(query)
			if err != nil {
				t.Fatalf("jsonpath.Parse(%q) error = %v", query, err)
			}
			selected := compiled.Select(data)

			got, ok := Lookup(root, p)
			if ok != (len(selected) == 1) {
				t.Fatalf("Lookup(%q) found = %t, jsonpath %s selected %d nodes", text, ok, query, len(selected))
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(toAny(got), selected[0]) {
				t.Fatalf("Lookup(%q) = %#v, jsonpath %s = %#v", text, toAny(got), query, selected[0])
			}
		})
	}
}

func TestResolve_MatchesGJSON(t *testing.T) {
	t.Parallel()

	// gjson returns the first of duplicate keys, so the fixture avoids them.
	const doc = `{"user": {"name": "ada", "roles": ["admin", "dev"], "age": 36, "meta": {"active": true}}, "list": [[1, 2], [3]]}`

	root, err := parser.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parser.Parse() error = %v", err)
	}

	paths := []string{
		"user",
		"user.name",
		"user.roles",
		"user.roles.1",
		"user.roles.2",
		"user.age",
		"user.meta.active",
		"user.missing",
		"list.0.1",
		"list.1.0",
		"list.1.1",
	}

	for _, text := range paths {
		p, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", text, err)
		}

		result := gjson.Get(doc, text)
		got, ok := Lookup(root, p)
		if ok != result.Exists() {
			t.Errorf("Lookup(%q) found = %t, gjson exists = %t", text, ok, result.Exists())
			continue
		}
		if !ok {
			continue
		}

		want, err := parser.Parse([]byte(result.Raw))
		if err != nil {
			t.Fatalf("parser.Parse(gjson raw %q) error = %v", result.Raw, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Lookup(%q) = %#v, gjson = %#v", text, got, want)
		}
	}
}

// jqQuery renders components as a jq path expression, indexing only where the
// decoded data holds an array.
func jqQuery(data any, components []string) string {
	var b strings.Builder
	b.WriteString(".")

	current := data
	for _, component := range components {
		if arr, ok := current.([]any); ok {
			if index, ok := ParseIndex(component); ok && component != "" {
				b.WriteString("[" + strconv.Itoa(index) + "]")
				if index < len(arr) {
					current = arr[index]
				} else {
					current = nil
				}
				continue
			}
		}

		key, _ := json.Marshal(component)
		b.WriteString("[" + string(key) + "]")
		if obj, ok := current.(map[string]any); ok {
			current = obj[component]
		} else {
			current = nil
		}
	}
	return b.String()
}

func TestResolve_MatchesJQ(t *testing.T) {
	t.Parallel()

	root, err := parser.Parse([]byte(conformanceDocument))
	if err != nil {
		t.Fatalf("parser.Parse() error = %v", err)
	}

	var data any
	if err := json.Unmarshal([]byte(conformanceDocument), &data); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	for _, text := range conformancePaths {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", text, err)
			}

			query := jqQuery(data, p.Components)
			parsed, err := gojq.Parse(query)
			if err != nil {
				t.Fatalf("gojq.Parse(%q) error = %v", query, err)
			}
			code, err := gojq.Compile(parsed)
			if err != nil {
				t.Fatalf("gojq.Compile(%q) error = %v", query, err)
			}

			result, _ := code.Run(data).Next()
			if _, failed := result.(error); failed {
				result = nil
			}

			got, ok := Lookup(root, p)
			if !ok {
				// jq yields null, or an error, where resolution stops short.
				if result != nil {
					t.Fatalf("Lookup(%q) not found, jq %s = %#v", text, query, result)
				}
				return
			}

			gotJSON, err := json.Marshal(toAny(got))
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			wantJSON, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if !bytes.Equal(gotJSON, wantJSON) {
				t.Fatalf("Lookup(%q) = %s, jq %s = %s", text, gotJSON, query, wantJSON)
			}
		})
	}
}
