package interp

import "fmt"

// binding is one entry in the variable table.
type binding struct {
	name    string
	value   Value
	isConst bool
	scope   int
}

// Environment holds the variable table as one linear slice. Function
// calls save the table length and scope id at frame entry, push
// parameter bindings, execute, then truncate back - an explicit
// activation-record discipline without heap-allocated frame objects.
type Environment struct {
	bindings []binding
	scope    int
}

// ErrConstReassign is returned by Set when the target binding is const.
type ErrConstReassign struct {
	Name string
}

func (e *ErrConstReassign) Error() string {
	return fmt.Sprintf("Cannot reassign constant '%s'", e.Name)
}

// NewEnvironment returns an empty environment at scope 0.
func NewEnvironment() *Environment {
	return &Environment{}
}

// Set assigns a value to a name. It scans from the newest binding to
// the oldest; if a binding with that name exists its value is
// overwritten with a deep copy (no new binding is created, regardless
// of the current scope), unless the binding is const, in which case the
// old value is preserved and an ErrConstReassign is returned. When no
// binding exists, a new one is created tagged with the current scope.
func (e *Environment) Set(name string, value Value, isConst bool) error {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].name == name {
			if e.bindings[i].isConst {
				return &ErrConstReassign{Name: name}
			}
			e.bindings[i].value = value.Copy()
			return nil
		}
	}
	e.bindings = append(e.bindings, binding{
		name:    name,
		value:   value.Copy(),
		isConst: isConst,
		scope:   e.scope,
	})
	return nil
}

// Define always creates a new binding in the current scope, shadowing
// any binding of the same name in an outer scope. Parameter binding
// uses this so that recursive calls do not clobber the caller's
// arguments.
func (e *Environment) Define(name string, value Value, isConst bool) {
	e.bindings = append(e.bindings, binding{
		name:    name,
		value:   value.Copy(),
		isConst: isConst,
		scope:   e.scope,
	})
}

// Get returns the stored value for the nearest binding of name, using
// the same newest-to-oldest scan as Set. The returned value is the
// stored one; callers that hand it to script code must copy it.
func (e *Environment) Get(name string) (Value, bool) {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].name == name {
			return e.bindings[i].value, true
		}
	}
	return nil, false
}

// Replace overwrites the stored value of the nearest binding of name
// in place without const checking or copying. It is used for
// post-increment and similar in-place numeric mutation where the
// evaluator has already read the old value.
func (e *Environment) Replace(name string, value Value) {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].name == name {
			e.bindings[i].value = value
			return
		}
	}
}

// Len returns the current variable-table length.
func (e *Environment) Len() int {
	return len(e.bindings)
}

// Truncate drops every binding past length n. Used on function-call
// frame exit to pop the callee's bindings.
func (e *Environment) Truncate(n int) {
	if n < len(e.bindings) {
		e.bindings = e.bindings[:n]
	}
}

// Scope returns the current scope id.
func (e *Environment) Scope() int {
	return e.scope
}

// SetScope sets the current scope id. Frames save the old id and
// restore it on exit.
func (e *Environment) SetScope(s int) {
	e.scope = s
}

// BindingsFrom returns name/value pairs for every binding created at or
// past table position n, in creation order. Module loading uses this to
// collect a module's top-level bindings as its exports.
func (e *Environment) BindingsFrom(n int) ([]string, []Value) {
	var names []string
	var values []Value
	for i := n; i < len(e.bindings); i++ {
		names = append(names, e.bindings[i].name)
		values = append(values, e.bindings[i].value)
	}
	return names, values
}
