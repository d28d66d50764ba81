package naming

import (
	"fmt"

	"protocol-generator/internal/diagnostic"
)

// Scope assigns identifiers to the names of one namespace (the packets of a
// phase direction, the fields of a container, the variants of a switch) and
// rejects names that normalize to the same identifier.
type Scope struct {
	kind  string
	loc   diagnostic.Location
	norm  func(string) string
	owner map[string]string
}

// NewScope returns a scope reporting collisions as kind names at loc.
func NewScope(kind string, loc diagnostic.Location) *Scope {
	return &Scope{kind: kind, loc: loc, norm: GoName, owner: make(map[string]string)}
}

// NewSuffixScope is like NewScope but names are appended to an enclosing
// identifier, so a leading digit is allowed.
func NewSuffixScope(kind string, loc diagnostic.Location) *Scope {
	s := NewScope(kind, loc)
	s.norm = Pascal

	return s
}

// Add returns the identifier for name. It fails with a SchemaFormatError when
// the name normalizes to nothing and with a NameCollisionError when another
// name of the scope already produced the same identifier.
func (s *Scope) Add(name string) (string, error) {
	ident := s.norm(name)
	if ident == "" {
		return "", diagnostic.NewSchemaFormatError(s.loc, diagnostic.CodeEmptyName,
			fmt.Sprintf("%s name %q has no identifier characters", s.kind, name))
	}

	if err := s.Claim(ident, name); err != nil {
		return "", err
	}

	return ident, nil
}

// Claim takes ident, as is, on behalf of name. It fails with a
// NameCollisionError when ident is already taken.
func (s *Scope) Claim(ident, name string) error {
	if prev, ok := s.owner[ident]; ok {
		return diagnostic.NewNameCollisionError(s.loc, s.kind, ident, prev, name)
	}

	s.owner[ident] = name

	return nil
}
