package interp

import (
	"github.com/kotoedoff/zenith/internal/lexer"
)

// defineFunction registers a function by name. Duplicate definitions
// overwrite the previous one; the registry lives for the interpreter's
// lifetime.
func (in *Interp) defineFunction(fn *FunctionValue) {
	in.funcs[fn.Name] = fn
}

// callFunction runs a user-defined function and returns its result.
//
// Frame discipline: the caller's variable-table length, scope id and
// return state are saved; parameters are bound as fresh bindings in a
// deeper scope; the body token slice is replayed through the block
// executor; then every binding created since frame entry is popped and
// the caller's state is restored. Restoring the saved return pair is
// what disarms the callee's return flag for the caller, which is why
// recursion and nested calls work.
func (in *Interp) callFunction(fn *FunctionValue, args []Value) Value {
	savedLen := in.env.Len()
	savedScope := in.env.Scope()
	savedReturn := in.returnVal
	savedReturning := in.isReturning
	savedBreaking := in.isBreaking
	savedContinuing := in.isContinuing

	in.returnVal = nil
	in.isReturning = false
	in.isBreaking = false
	in.isContinuing = false
	in.env.SetScope(savedScope + 1)

	// Excess arguments are ignored; missing parameters stay unbound.
	for i, param := range fn.Params {
		if i < len(args) {
			in.env.Define(param, args[i], false)
		}
	}

	idx := 0
	in.execBlock(fn.Body, &idx)

	result := in.returnVal
	if result == nil {
		result = &NullValue{}
	}

	in.env.Truncate(savedLen)
	in.env.SetScope(savedScope)
	in.returnVal = savedReturn
	in.isReturning = savedReturning
	in.isBreaking = savedBreaking
	in.isContinuing = savedContinuing

	return result
}

// captureBody clones the token range [start, end) so the function owns
// its body for as long as it lives, independent of the defining stream.
func captureBody(tokens []lexer.Token, start, end int) []lexer.Token {
	body := make([]lexer.Token, end-start)
	copy(body, tokens[start:end])
	return body
}
