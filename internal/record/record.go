// Package record defines the persisted shape of a parent graph.
//
// Records are what storage reads and writes. They carry no behavior beyond
// copying; conversion to the domain graph lives in package mapper.
package record

// Parent is a stored parent row together with its child rows.
// A nil Children slice means the collection was never loaded or set.
type Parent struct {
	ID       string  `json:"id" yaml:"id"`
	Value    string  `json:"value" yaml:"value"`
	Children []Child `json:"children,omitempty" yaml:"children,omitempty"`
}

// Child is a stored child row
type Child struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Clone returns a deep copy. A nil Children slice stays nil.
func (p Parent) Clone() Parent {
	out := Parent{ID: p.ID, Value: p.Value}
	if p.Children != nil {
		out.Children = make([]Child, len(p.Children))
		copy(out.Children, p.Children)
	}
	return out
}

// ChildIndex returns the position of the first child with the given id, or -1
func (p Parent) ChildIndex(id string) int {
	for i := range p.Children {
		if p.Children[i].ID == id {
			return i
		}
	}
	return -1
}
