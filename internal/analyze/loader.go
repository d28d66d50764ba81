package analyze

import (
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName | packages.NeedTypes

// Analyzer loads Go packages and collects their exported symbols.
type Analyzer struct {
	// Dir is the directory go/packages runs in; empty means the current one.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// LoadPackages loads the packages with the given import paths. A package
// that fails to load is recorded in Exports.Packages with its error; only a
// failure of the loader itself is returned.
func (a *Analyzer) LoadPackages(paths ...string) (*Exports, error) {
	exports := NewExports()
	if len(paths) == 0 {
		return exports, nil
	}

	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	for _, path := range paths {
		exports.Packages[path] = "package not found"
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			errs := make([]error, 0, len(pkg.Errors))
			for _, e := range pkg.Errors {
				errs = append(errs, e)
			}

			exports.Packages[pkg.PkgPath] = errors.Join(errs...).Error()

			continue
		}

		exports.Packages[pkg.PkgPath] = ""
		processPackage(pkg, exports)
	}

	return exports, nil
}

// processPackage records the exported package-level symbols of pkg.
func processPackage(pkg *packages.Package, exports *Exports) {
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}

		sym := Symbol{ID: TypeID{PkgPath: pkg.PkgPath, Name: name}}

		switch o := obj.(type) {
		case *types.TypeName:
			sym.Kind = SymbolType

			if named, ok := o.Type().(*types.Named); ok && !o.IsAlias() {
				sym.TypeParams = named.TypeParams().Len()
			}
		case *types.Func:
			sym.Kind = SymbolFunc
		case *types.Var:
			sym.Kind = SymbolVar
		case *types.Const:
			sym.Kind = SymbolConst
		}

		exports.Symbols[sym.ID] = sym
	}
}
