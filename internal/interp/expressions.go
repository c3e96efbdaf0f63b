package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kotoedoff/zenith/internal/lexer"
)

// evalExpr evaluates one expression starting at *idx and advances past
// it. It always returns an owned value; malformed input yields null.
func (in *Interp) evalExpr(tokens []lexer.Token, idx *int) Value {
	return in.evalBinary(tokens, idx, 1)
}

// evalBinary is a precedence climber: it evaluates a unary operand,
// then folds in binary operators of at least minPrec, recursing with a
// higher floor for the right-hand side. ** recurses at its own level
// and so groups to the right.
func (in *Interp) evalBinary(tokens []lexer.Token, idx *int, minPrec int) Value {
	left := in.evalUnary(tokens, idx)

	for *idx < len(tokens) {
		op := tokens[*idx].Type
		prec, ok := binaryPrecedence[op]
		if !ok || prec < minPrec {
			break
		}
		*idx++
		next := prec + 1
		if rightAssociative(op) {
			next = prec
		}
		right := in.evalBinary(tokens, idx, next)
		left = applyBinary(op, left, right)
	}
	return left
}

func (in *Interp) evalUnary(tokens []lexer.Token, idx *int) Value {
	if *idx >= len(tokens) {
		return &NullValue{}
	}
	switch tokens[*idx].Type {
	case lexer.MINUS:
		*idx++
		return &NumberValue{Value: -numberOf(in.evalUnary(tokens, idx))}
	case lexer.NOT:
		*idx++
		return &BoolValue{Value: !truthy(in.evalUnary(tokens, idx))}
	case lexer.BIT_NOT:
		*idx++
		return &NumberValue{Value: float64(^int64(numberOf(in.evalUnary(tokens, idx))))}
	}
	return in.evalPrimary(tokens, idx)
}

func (in *Interp) evalPrimary(tokens []lexer.Token, idx *int) Value {
	if *idx >= len(tokens) {
		return &NullValue{}
	}
	tok := tokens[*idx]

	switch tok.Type {
	case lexer.NUMBER:
		*idx++
		// The lexer is permissive, so conversion of a malformed
		// literal may fail; it then yields 0.
		n, _ := strconv.ParseFloat(tok.Literal, 64)
		return &NumberValue{Value: n}

	case lexer.STRING:
		*idx++
		return &StringValue{Value: tok.Literal}

	case lexer.TRUE:
		*idx++
		return &BoolValue{Value: true}

	case lexer.FALSE:
		*idx++
		return &BoolValue{Value: false}

	case lexer.NULL:
		*idx++
		return &NullValue{}

	case lexer.UNDEFINED:
		*idx++
		return &UndefinedValue{}

	case lexer.LPAREN:
		*idx++
		v := in.evalExpr(tokens, idx)
		in.expect(tokens, idx, lexer.RPAREN)
		return v

	case lexer.LBRACKET:
		return in.evalArrayLiteral(tokens, idx)

	case lexer.LBRACE:
		return in.evalDictLiteral(tokens, idx)

	case lexer.RANGE:
		return in.evalRange(tokens, idx)

	case lexer.INPUT:
		return in.evalInput(tokens, idx)

	case lexer.LENGTH, lexer.READ, lexer.EXISTS, lexer.HASH,
		lexer.ENCRYPT, lexer.DECRYPT, lexer.SALT, lexer.WINDOW:
		return in.evalIntrinsic(tok.Type, tokens, idx)

	case lexer.IDENT:
		return in.evalIdent(tokens, idx)
	}

	// Anything else is not a primary; consume it and yield null so the
	// evaluator always makes progress.
	*idx++
	return &NullValue{}
}

// expect consumes one token of the given type when present.
func (in *Interp) expect(tokens []lexer.Token, idx *int, tt lexer.TokenType) {
	if *idx < len(tokens) && tokens[*idx].Type == tt {
		*idx++
	}
}

// peekIs reports whether the current token has the given type.
func peekIs(tokens []lexer.Token, idx int, tt lexer.TokenType) bool {
	return idx < len(tokens) && tokens[idx].Type == tt
}

func (in *Interp) evalArrayLiteral(tokens []lexer.Token, idx *int) Value {
	*idx++ // skip [
	arr := &ArrayValue{}
	for *idx < len(tokens) && tokens[*idx].Type != lexer.RBRACKET {
		arr.Elements = append(arr.Elements, in.evalExpr(tokens, idx))
		in.expect(tokens, idx, lexer.COMMA)
	}
	in.expect(tokens, idx, lexer.RBRACKET)
	return arr
}

// evalDictLiteral parses {key: expr, ...}. Keys are identifiers,
// keywords used as bare words, or string literals.
func (in *Interp) evalDictLiteral(tokens []lexer.Token, idx *int) Value {
	*idx++ // skip {
	dict := NewDict()
	for *idx < len(tokens) && tokens[*idx].Type != lexer.RBRACE {
		key := tokens[*idx].Literal
		*idx++
		in.expect(tokens, idx, lexer.COLON)
		dict.Set(key, in.evalExpr(tokens, idx))
		in.expect(tokens, idx, lexer.COMMA)
	}
	in.expect(tokens, idx, lexer.RBRACE)
	return dict
}

// evalRange builds the array for range(end), range(start, end) and
// range(start, end, step). The condition is i < end for positive step
// and i > end for negative step.
func (in *Interp) evalRange(tokens []lexer.Token, idx *int) Value {
	*idx++ // skip range
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return &NullValue{}
	}
	*idx++

	start, end, step := 0.0, 0.0, 1.0
	end = numberOf(in.evalExpr(tokens, idx))
	if peekIs(tokens, *idx, lexer.COMMA) {
		*idx++
		start = end
		end = numberOf(in.evalExpr(tokens, idx))
		if peekIs(tokens, *idx, lexer.COMMA) {
			*idx++
			step = numberOf(in.evalExpr(tokens, idx))
		}
	}
	in.expect(tokens, idx, lexer.RPAREN)

	arr := &ArrayValue{}
	if step == 0 {
		return arr
	}
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		arr.Elements = append(arr.Elements, &NumberValue{Value: i})
	}
	return arr
}

// evalInput prints the optional prompt, reads one line from standard
// input and returns it with the trailing newline stripped.
func (in *Interp) evalInput(tokens []lexer.Token, idx *int) Value {
	*idx++ // skip input
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return &StringValue{}
	}
	*idx++
	if *idx < len(tokens) && tokens[*idx].Type != lexer.RPAREN {
		prompt := in.evalExpr(tokens, idx)
		fmt.Fprint(in.stdout, prompt.String())
	}
	in.expect(tokens, idx, lexer.RPAREN)

	line, err := in.stdin.ReadString('\n')
	if err != nil && line == "" {
		return &StringValue{}
	}
	line = strings.TrimRight(line, "\n")
	line = strings.TrimRight(line, "\r")
	return &StringValue{Value: line}
}

// evalIntrinsic handles the fixed intrinsic-call forms that parse in
// primary position and forward to host capabilities.
func (in *Interp) evalIntrinsic(kind lexer.TokenType, tokens []lexer.Token, idx *int) Value {
	*idx++ // skip the keyword
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return &NullValue{}
	}
	*idx++
	args := in.evalArgs(tokens, idx)

	arg := func(i int) Value {
		if i < len(args) {
			return args[i]
		}
		return &NullValue{}
	}
	str := func(i int) string { return arg(i).String() }

	switch kind {
	case lexer.LENGTH:
		switch v := arg(0).(type) {
		case *ArrayValue:
			return &NumberValue{Value: float64(len(v.Elements))}
		case *StringValue:
			return &NumberValue{Value: float64(len(v.Value))}
		case *DictValue:
			return &NumberValue{Value: float64(len(v.Keys))}
		}
		return &NumberValue{}

	case lexer.READ:
		if in.fs == nil {
			return &StringValue{}
		}
		// A missing file reads as the empty string.
		content, _ := in.fs.Read(str(0))
		return &StringValue{Value: content}

	case lexer.EXISTS:
		if in.fs == nil {
			return &BoolValue{}
		}
		return &BoolValue{Value: in.fs.Exists(str(0))}

	case lexer.HASH:
		if in.crypto == nil {
			return &NullValue{}
		}
		algorithm := "sha256"
		if len(args) > 1 {
			algorithm = str(1)
		}
		return &StringValue{Value: in.crypto.Hash(str(0), algorithm)}

	case lexer.ENCRYPT:
		if in.crypto == nil {
			return &NullValue{}
		}
		out, err := in.crypto.Encrypt(str(0), str(1))
		if err != nil {
			in.reportError("encrypt failed: %v", err)
			return &NullValue{}
		}
		return &StringValue{Value: out}

	case lexer.DECRYPT:
		if in.crypto == nil {
			return &NullValue{}
		}
		out, err := in.crypto.Decrypt(str(0), str(1))
		if err != nil {
			in.reportError("decrypt failed: %v", err)
			return &NullValue{}
		}
		return &StringValue{Value: out}

	case lexer.SALT:
		if in.crypto == nil {
			return &NullValue{}
		}
		length := int(numberOf(arg(0)))
		if length <= 0 {
			length = 32
		}
		return &StringValue{Value: in.crypto.Salt(length)}

	case lexer.WINDOW:
		if in.gfx == nil {
			return &NullValue{}
		}
		useGL := false
		if len(args) > 3 {
			useGL = truthy(arg(3))
		}
		handle, err := in.gfx.CreateWindow(str(0), int(numberOf(arg(1))), int(numberOf(arg(2))), useGL)
		if err != nil {
			in.reportError("window failed: %v", err)
			return &NullValue{}
		}
		return &WindowValue{Handle: handle}
	}
	return &NullValue{}
}

// evalArgs parses a comma-separated positional argument list terminated
// by a closing parenthesis, which it consumes.
func (in *Interp) evalArgs(tokens []lexer.Token, idx *int) []Value {
	var args []Value
	for *idx < len(tokens) && tokens[*idx].Type != lexer.RPAREN {
		args = append(args, in.evalExpr(tokens, idx))
		in.expect(tokens, idx, lexer.COMMA)
	}
	in.expect(tokens, idx, lexer.RPAREN)
	return args
}

// evalIdent evaluates an identifier primary with its postfix forms:
// a call when followed by (, post-increment and post-decrement, and a
// chain of index and member reads.
func (in *Interp) evalIdent(tokens []lexer.Token, idx *int) Value {
	name := tokens[*idx].Literal
	*idx++

	// Call form. An unregistered name still consumes its argument list
	// and yields null.
	if peekIs(tokens, *idx, lexer.LPAREN) {
		*idx++
		args := in.evalArgs(tokens, idx)
		fn, ok := in.funcs[name]
		if !ok {
			return &NullValue{}
		}
		return in.callFunction(fn, args)
	}

	stored, bound := in.env.Get(name)

	// Post-increment and post-decrement return the previous numeric
	// value and mutate the binding in place.
	if peekIs(tokens, *idx, lexer.INC) || peekIs(tokens, *idx, lexer.DEC) {
		delta := 1.0
		if tokens[*idx].Type == lexer.DEC {
			delta = -1
		}
		*idx++
		if n, ok := stored.(*NumberValue); ok {
			old := n.Value
			in.env.Replace(name, &NumberValue{Value: old + delta})
			return &NumberValue{Value: old}
		}
		return &NullValue{}
	}

	// Index and member reads, chained left to right. An unbound base
	// still consumes its postfix tokens; every read on it yields null.
	current := stored
	copied := false
	for {
		if peekIs(tokens, *idx, lexer.LBRACKET) {
			*idx++
			index := in.evalExpr(tokens, idx)
			in.expect(tokens, idx, lexer.RBRACKET)
			current = indexRead(current, index)
			copied = true
			continue
		}
		if peekIs(tokens, *idx, lexer.DOT) && *idx+1 < len(tokens) && tokens[*idx+1].Type == lexer.IDENT {
			member := tokens[*idx+1].Literal
			*idx += 2
			current = memberRead(current, member)
			copied = true
			continue
		}
		break
	}

	if copied {
		return current
	}
	if !bound {
		return &NullValue{}
	}
	return current.Copy()
}

// indexRead reads one element: arrays by integer index (out of range
// yields null), dicts by string key (missing key yields null). Any
// other base yields null.
func indexRead(base, index Value) Value {
	switch b := base.(type) {
	case *ArrayValue:
		if n, ok := index.(*NumberValue); ok {
			i := int(n.Value)
			if i >= 0 && i < len(b.Elements) {
				return b.Elements[i].Copy()
			}
		}
	case *DictValue:
		if s, ok := index.(*StringValue); ok {
			if v := b.Get(s.Value); v != nil {
				return v.Copy()
			}
		}
	}
	return &NullValue{}
}

// memberRead resolves name on module exports and dict keys.
func memberRead(base Value, name string) Value {
	switch b := base.(type) {
	case *ModuleValue:
		if v, ok := b.Exports[name]; ok {
			return v.Copy()
		}
	case *DictValue:
		if v := b.Get(name); v != nil {
			return v.Copy()
		}
	}
	return &NullValue{}
}
