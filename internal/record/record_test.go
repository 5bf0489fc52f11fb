package record

import "testing"

func TestParentClone(t *testing.T) {
	t.Run("copy does not alias children", func(t *testing.T) {
		src := Parent{ID: "p", Value: "v", Children: []Child{{ID: "a", Value: "1"}}}
		cp := src.Clone()
		cp.Children[0].Value = "changed"

		if src.Children[0].Value != "1" {
			t.Errorf("source child value = %q, want 1", src.Children[0].Value)
		}
	})

	t.Run("nil children stay nil", func(t *testing.T) {
		if cp := (Parent{ID: "p"}).Clone(); cp.Children != nil {
			t.Errorf("Children = %#v, want nil", cp.Children)
		}
	})

	t.Run("empty children stay empty", func(t *testing.T) {
		cp := Parent{ID: "p", Children: []Child{}}.Clone()
		if cp.Children == nil || len(cp.Children) != 0 {
			t.Errorf("Children = %#v, want empty non-nil", cp.Children)
		}
	})
}

func TestParentChildIndex(t *testing.T) {
	p := Parent{Children: []Child{{ID: "a"}, {ID: "b"}, {ID: "a"}}}

	tests := []struct {
		id   string
		want int
	}{
		{"a", 0}, // First occurrence
		{"b", 1},
		{"c", -1},
	}
	for _, tt := range tests {
		if got := p.ChildIndex(tt.id); got != tt.want {
			t.Errorf("ChildIndex(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}

	if got := (Parent{}).ChildIndex("a"); got != -1 {
		t.Errorf("ChildIndex on empty parent = %d, want -1", got)
	}
}
