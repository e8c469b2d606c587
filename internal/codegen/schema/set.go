package schema

import "fmt"

// Set is an ordered name -> Node mapping. Insertion order is kept so that
// everything rendered from a Set is deterministic.
type Set struct {
	names []string
	nodes map[string]*Node
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{nodes: make(map[string]*Node)}
}

// Add inserts or replaces a node. Replacing keeps the original position.
func (s *Set) Add(name string, n *Node) {
	if _, ok := s.nodes[name]; !ok {
		s.names = append(s.names, name)
	}
	s.nodes[name] = n
}

// With returns a copy of the set with name bound to n. The receiver is left
// untouched so a shared set can be extended per control type.
func (s *Set) With(name string, n *Node) *Set {
	out := &Set{
		names: append([]string(nil), s.names...),
		nodes: make(map[string]*Node, len(s.nodes)+1),
	}
	for k, v := range s.nodes {
		out.nodes[k] = v
	}
	out.Add(name, n)
	return out
}

// Lookup returns the node registered under name.
func (s *Set) Lookup(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Names returns the names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of nodes.
func (s *Set) Len() int { return len(s.names) }

// Resolve maps a $ref to the name of its target. References are resolved by
// simple name lookup; a missing target yields ErrUnresolvedReference.
func (s *Set) Resolve(ref string) (string, error) {
	name := RefName(ref)
	if _, ok := s.nodes[name]; !ok {
		return name, fmt.Errorf("%w: %q", ErrUnresolvedReference, ref)
	}
	return name, nil
}

// Deref follows reference nodes until a non-reference node is reached.
// Each name is visited at most once, so reference cycles end in an error
// instead of unbounded recursion.
func (s *Set) Deref(n *Node) (*Node, error) {
	seen := make(map[string]struct{})
	for n != nil && n.Kind == KindRef {
		name, err := s.Resolve(n.Ref)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("schema: reference cycle at %q", n.Ref)
		}
		seen[name] = struct{}{}
		n = s.nodes[name]
	}
	return n, nil
}
