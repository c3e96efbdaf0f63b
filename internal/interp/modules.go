package interp

import (
	"os"
	"path/filepath"

	"github.com/kotoedoff/zenith/internal/lexer"
)

// execImport handles `import NAME`: the module file is located, loaded,
// executed in an isolated scope, and the name is bound to the resulting
// module value. A missing module reports an error and execution
// continues.
func (in *Interp) execImport(tokens []lexer.Token, idx *int) {
	*idx++ // skip import
	if !peekIs(tokens, *idx, lexer.IDENT) {
		return
	}
	name := tokens[*idx].Literal
	*idx++

	mod := in.loadModule(name)
	if mod == nil {
		in.reportError("Module '%s' not found", name)
		return
	}
	// Re-importing an already-bound module is a no-op.
	if current, ok := in.env.Get(name); ok && current == Value(mod) {
		return
	}
	if err := in.env.Set(name, mod, true); err != nil {
		in.reportError("%v", err)
	}
}

// loadModule returns the registered module for name, loading it on
// first use. The search order is <module path>/<name>.zt, then
// ./<name>.zt. The module body runs against its own variable table;
// the bindings it creates become its exports. Functions the module
// defines register globally, which is the registration-by-name module
// model.
func (in *Interp) loadModule(name string) *ModuleValue {
	if mod, ok := in.modules[name]; ok {
		return mod
	}

	path := filepath.Join(in.modulePath, name+".zt")
	content, err := os.ReadFile(path)
	if err != nil {
		path = filepath.Join(".", name+".zt")
		content, err = os.ReadFile(path)
		if err != nil {
			return nil
		}
	}

	mod := &ModuleValue{Name: name, Exports: make(map[string]Value)}
	// Register before executing so recursive imports terminate.
	in.modules[name] = mod

	// The module body runs against a fresh variable table so its
	// bindings cannot collide with the importer's.
	savedEnv := in.env
	in.env = NewEnvironment()
	in.Run(lexer.Tokenize(string(content)))

	names, values := in.env.BindingsFrom(0)
	for i, exportName := range names {
		mod.Exports[exportName] = values[i].Copy()
	}
	in.env = savedEnv

	return mod
}
