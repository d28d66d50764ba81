package transform

import "strings"

// parentPrefix climbs one container up in a sibling reference.
const parentPrefix = "../"

// scope tracks the field names declared so far in one container.
type scope struct {
	parent   *scope
	declared map[string]struct{}
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, declared: make(map[string]struct{})}
}

func (s *scope) declare(name string) {
	s.declared[name] = struct{}{}
}

// resolves reports whether ref names a field declared before the current one.
// Each leading "../" moves to the enclosing container; only the first segment
// of a slash-separated remainder must exist.
func (s *scope) resolves(ref string) bool {
	cur := s
	for strings.HasPrefix(ref, parentPrefix) {
		ref = strings.TrimPrefix(ref, parentPrefix)

		cur = cur.parent
		if cur == nil {
			return false
		}
	}

	head, _, _ := strings.Cut(ref, "/")
	if head == "" {
		return false
	}

	_, ok := cur.declared[head]

	return ok
}
