package tree

import "testing"

func nested() Node {
	return NewMapping(map[string]Node{
		"first": NewMapping(map[string]Node{
			"second": NewMapping(map[string]Node{
				"third": NewScalar("Value!"),
			}),
		}),
	})
}

func TestRetrieve(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		keys     []string
		wantKind Kind
		wantText string
	}{
		{"nested value", nested(), []string{"first", "second", "third"}, Scalar, "Value!"},
		{"missing key", nested(), []string{"non_existing"}, Absent, ""},
		{"missing intermediate key", nested(), []string{"first", "non_existing"}, Absent, ""},
		{"more keys than depth", nested(), []string{"first", "second", "third", "fourth"}, Absent, ""},
		{"no keys", nested(), nil, Absent, ""},
		{"scalar input", NewScalar("something different"), nil, Absent, ""},
		{"scalar input with keys", NewScalar("something different"), []string{"a"}, Absent, ""},
		{"zero node", Node{}, []string{"a"}, Absent, ""},
		{"list input", NewList(nested()), []string{"first"}, Absent, ""},
		{"partial path returns mapping", nested(), []string{"first", "second"}, Mapping, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Retrieve(tt.node, tt.keys...)
			if got.Kind() != tt.wantKind {
				t.Fatalf("Retrieve() kind = %v, want %v", got.Kind(), tt.wantKind)
			}
			if s, _ := got.Scalar(); s != tt.wantText {
				t.Errorf("Retrieve() text = %q, want %q", s, tt.wantText)
			}
		})
	}
}

func TestRetrieveExplicitAbsent(t *testing.T) {
	n := NewMapping(map[string]Node{"empty": {}})
	got := Retrieve(n, "empty")
	if !got.IsAbsent() {
		t.Errorf("Retrieve() = %v, want absent", got.Kind())
	}
	if got := Retrieve(n, "empty", "deeper"); !got.IsAbsent() {
		t.Errorf("Retrieve() through absent = %v, want absent", got.Kind())
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		node   Node
		want   string
		wantOK bool
	}{
		{"scalar", NewScalar("551"), "551", true},
		{"scalar with spaces", NewScalar("  551\n"), "551", true},
		{"blank scalar", NewScalar("   "), "", false},
		{"mapping with text", NewMapping(map[string]Node{
			"type":  NewScalar("canonical"),
			TextKey: NewScalar("github.com"),
		}), "github.com", true},
		{"mapping without text", NewMapping(map[string]Node{"type": NewScalar("canonical")}), "", false},
		{"absent", Node{}, "", false},
		{"list", NewList(NewScalar("a")), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.node)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Text() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestItems(t *testing.T) {
	one := NewScalar("a")
	if got := Items(Node{}); got != nil {
		t.Errorf("Items(absent) = %v, want nil", got)
	}
	if got := Items(one); len(got) != 1 {
		t.Errorf("Items(scalar) len = %d, want 1", len(got))
	}
	list := NewList(one, NewScalar("b"), NewScalar("c"))
	items := Items(list)
	if len(items) != 3 {
		t.Fatalf("Items(list) len = %d, want 3", len(items))
	}
	items[0] = NewScalar("changed")
	if s, _ := Items(list)[0].Scalar(); s != "a" {
		t.Error("Items() should not expose the list's backing array")
	}
}

func TestNewMappingCopies(t *testing.T) {
	fields := map[string]Node{"a": NewScalar("1")}
	n := NewMapping(fields)
	fields["b"] = NewScalar("2")
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}
	if keys := n.Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Errorf("Keys() = %v, want [a]", keys)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Absent: "absent", Scalar: "scalar", Mapping: "mapping", List: "list"} {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
