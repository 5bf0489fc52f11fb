package domain

// Parent is the root of a target graph
type Parent struct {
	ID       string   `json:"id"`
	Value    string   `json:"value"`
	Children Children `json:"-"`
}

// Child is a leaf of a target graph
type Child struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// NewParent creates a parent owning a materialized copy of children
func NewParent(id, value string, children ...Child) *Parent {
	list := make([]*Child, 0, len(children))
	for i := range children {
		c := children[i]
		list = append(list, &c)
	}
	return &Parent{
		ID:       id,
		Value:    value,
		Children: NewChildList(list...),
	}
}

// ChildCount returns the number of children, treating a nil collection as empty
func (p *Parent) ChildCount() int {
	if p == nil || p.Children == nil {
		return 0
	}
	return p.Children.Len()
}

// Child returns the first child with the given id, or nil
func (p *Parent) Child(id string) *Child {
	if p == nil || p.Children == nil {
		return nil
	}
	return p.Children.FindByID(id)
}

// SetChildren replaces the child collection with a materialized one
func (p *Parent) SetChildren(children ...*Child) {
	p.Children = NewChildList(children...)
}
