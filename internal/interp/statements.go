package interp

import (
	"fmt"
	"strconv"

	"github.com/kotoedoff/zenith/internal/lexer"
)

// execStatement reads one statement at *idx, executes it, and advances
// past it. Dispatch is on the leading token.
func (in *Interp) execStatement(tokens []lexer.Token, idx *int) {
	if *idx >= len(tokens) || in.flagSet() {
		return
	}

	switch tokens[*idx].Type {
	case lexer.EOF:
		*idx = len(tokens)

	case lexer.SEMICOLON:
		*idx++

	case lexer.FUNC:
		in.execFuncDef(tokens, idx)

	case lexer.RETURN:
		in.execReturn(tokens, idx)

	case lexer.BREAK:
		*idx++
		in.isBreaking = true
		in.expect(tokens, idx, lexer.SEMICOLON)

	case lexer.CONTINUE:
		*idx++
		in.isContinuing = true
		in.expect(tokens, idx, lexer.SEMICOLON)

	case lexer.IF:
		*idx++
		in.execIf(tokens, idx)

	case lexer.WHILE:
		in.execWhile(tokens, idx)

	case lexer.FOR:
		in.execFor(tokens, idx)

	case lexer.LET, lexer.CONST, lexer.VAR:
		in.execDeclaration(tokens, idx)

	case lexer.PRINT:
		in.execPrint(tokens, idx)

	case lexer.IMPORT:
		in.execImport(tokens, idx)

	case lexer.START:
		in.execStart(tokens, idx)

	case lexer.STOP:
		in.execStop(tokens, idx)

	case lexer.WRITE:
		in.execWrite(tokens, idx)

	case lexer.DELETE:
		in.execDelete(tokens, idx)

	case lexer.MKDIR:
		in.execMkdir(tokens, idx)

	case lexer.CLEAR, lexer.RECT, lexer.CIRCLE, lexer.RENDER:
		in.execGraphics(tokens, idx)

	case lexer.IDENT:
		in.execIdentStatement(tokens, idx)

	default:
		// Expression statement: evaluate and discard.
		in.evalExpr(tokens, idx)
	}
}

// flagSet reports whether a non-local control-flow flag is armed.
func (in *Interp) flagSet() bool {
	return in.isReturning || in.isBreaking || in.isContinuing
}

// execBlock executes the token range between matched braces. It steps
// through statements until the closing brace or until a control-flow
// flag is set, in which case it skips ahead to the matching close brace
// so the position stays consistent for the caller.
func (in *Interp) execBlock(tokens []lexer.Token, idx *int) {
	if !peekIs(tokens, *idx, lexer.LBRACE) {
		return
	}
	*idx++

	for *idx < len(tokens) && tokens[*idx].Type != lexer.RBRACE {
		if in.flagSet() {
			in.skipToBlockEnd(tokens, idx)
			return
		}
		in.execStatement(tokens, idx)
	}
	in.expect(tokens, idx, lexer.RBRACE)
}

// skipBlock skips a {...} block without executing it, matching braces
// with a depth counter.
func (in *Interp) skipBlock(tokens []lexer.Token, idx *int) {
	if !peekIs(tokens, *idx, lexer.LBRACE) {
		return
	}
	*idx++
	in.skipToBlockEnd(tokens, idx)
}

// skipToBlockEnd advances past the close brace matching the block the
// position is currently inside.
func (in *Interp) skipToBlockEnd(tokens []lexer.Token, idx *int) {
	depth := 1
	for *idx < len(tokens) && depth > 0 {
		switch tokens[*idx].Type {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			depth--
		}
		*idx++
	}
}

// execFuncDef registers a function definition, copying the body token
// slice braces included.
func (in *Interp) execFuncDef(tokens []lexer.Token, idx *int) {
	*idx++ // skip func
	if !peekIs(tokens, *idx, lexer.IDENT) {
		return
	}
	name := tokens[*idx].Literal
	*idx++

	var params []string
	if peekIs(tokens, *idx, lexer.LPAREN) {
		*idx++
		for *idx < len(tokens) && tokens[*idx].Type != lexer.RPAREN {
			if tokens[*idx].Type == lexer.IDENT {
				params = append(params, tokens[*idx].Literal)
			}
			*idx++
			in.expect(tokens, idx, lexer.COMMA)
		}
		in.expect(tokens, idx, lexer.RPAREN)
	}

	if !peekIs(tokens, *idx, lexer.LBRACE) {
		return
	}
	start := *idx
	in.skipBlock(tokens, idx)
	in.defineFunction(&FunctionValue{
		Name:   name,
		Params: params,
		Body:   captureBody(tokens, start, *idx),
	})
}

func (in *Interp) execReturn(tokens []lexer.Token, idx *int) {
	*idx++ // skip return
	if *idx < len(tokens) &&
		tokens[*idx].Type != lexer.SEMICOLON &&
		tokens[*idx].Type != lexer.RBRACE &&
		tokens[*idx].Type != lexer.EOF {
		in.returnVal = in.evalExpr(tokens, idx)
	} else {
		in.returnVal = &NullValue{}
	}
	in.isReturning = true
	in.expect(tokens, idx, lexer.SEMICOLON)
}

// execIf executes an if/elif/else chain. The position is just past the
// if (or elif) keyword. Parentheses around the condition are optional;
// they parse as a grouped expression when present. An elif arm is
// handled by recursing into this function, so the chain needs no token
// mutation.
func (in *Interp) execIf(tokens []lexer.Token, idx *int) {
	cond := in.evalExpr(tokens, idx)

	if truthy(cond) {
		in.execBlock(tokens, idx)
		// Skip the remaining elif/else arms.
		for *idx < len(tokens) {
			if tokens[*idx].Type == lexer.ELSE {
				*idx++
				in.skipBlock(tokens, idx)
				break
			}
			if tokens[*idx].Type == lexer.ELIF {
				*idx++
				in.skipCondition(tokens, idx)
				in.skipBlock(tokens, idx)
				continue
			}
			break
		}
		return
	}

	in.skipBlock(tokens, idx)
	if peekIs(tokens, *idx, lexer.ELSE) {
		*idx++
		in.execBlock(tokens, idx)
		return
	}
	if peekIs(tokens, *idx, lexer.ELIF) {
		*idx++
		in.execIf(tokens, idx)
	}
}

// skipCondition advances past an untaken arm's condition, up to its
// opening brace.
func (in *Interp) skipCondition(tokens []lexer.Token, idx *int) {
	for *idx < len(tokens) && tokens[*idx].Type != lexer.LBRACE {
		*idx++
	}
}

// execWhile re-evaluates the condition each iteration from its saved
// token position and runs the block while it holds.
func (in *Interp) execWhile(tokens []lexer.Token, idx *int) {
	*idx++ // skip while
	condStart := *idx

	for {
		pos := condStart
		cond := in.evalExpr(tokens, &pos)

		if !truthy(cond) {
			in.skipBlock(tokens, &pos)
			*idx = pos
			return
		}

		in.execBlock(tokens, &pos)
		*idx = pos

		if in.isBreaking {
			in.isBreaking = false
			return
		}
		in.isContinuing = false
		if in.isReturning {
			return
		}
	}
}

// execFor executes for IDENT in expr { ... }, iterating the elements
// of an array value. A non-array iterable runs the block zero times.
func (in *Interp) execFor(tokens []lexer.Token, idx *int) {
	*idx++ // skip for
	if !peekIs(tokens, *idx, lexer.IDENT) {
		return
	}
	name := tokens[*idx].Literal
	*idx++
	in.expect(tokens, idx, lexer.IN)

	iterable := in.evalExpr(tokens, idx)
	blockStart := *idx
	in.skipBlock(tokens, idx)

	arr, ok := iterable.(*ArrayValue)
	if !ok {
		return
	}
	for _, element := range arr.Elements {
		if err := in.env.Set(name, element, false); err != nil {
			in.reportError("%v", err)
			return
		}
		pos := blockStart
		in.execBlock(tokens, &pos)

		if in.isBreaking {
			in.isBreaking = false
			return
		}
		in.isContinuing = false
		if in.isReturning {
			return
		}
	}
}

// execDeclaration handles let/const/var NAME = expr.
func (in *Interp) execDeclaration(tokens []lexer.Token, idx *int) {
	isConst := tokens[*idx].Type == lexer.CONST
	*idx++
	if !peekIs(tokens, *idx, lexer.IDENT) {
		return
	}
	name := tokens[*idx].Literal
	*idx++
	if !peekIs(tokens, *idx, lexer.EQ) {
		return
	}
	*idx++
	value := in.evalExpr(tokens, idx)
	if err := in.env.Set(name, value, isConst); err != nil {
		in.reportError("%v", err)
	}
}

// execPrint evaluates each comma-separated argument, renders it, and
// writes the renderings separated by single spaces, newline-terminated.
func (in *Interp) execPrint(tokens []lexer.Token, idx *int) {
	*idx++ // skip print
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return
	}
	*idx++
	first := true
	for *idx < len(tokens) && tokens[*idx].Type != lexer.RPAREN {
		if !first {
			fmt.Fprint(in.stdout, " ")
		}
		first = false
		v := in.evalExpr(tokens, idx)
		fmt.Fprint(in.stdout, v.String())
		in.expect(tokens, idx, lexer.COMMA)
	}
	fmt.Fprintln(in.stdout)
	in.flush()
	in.expect(tokens, idx, lexer.RPAREN)
}

// flush pushes buffered output through when the writer supports it.
func (in *Interp) flush() {
	type flusher interface{ Flush() error }
	if f, ok := in.stdout.(flusher); ok {
		_ = f.Flush()
	}
}

// execIdentStatement handles statements that begin with an identifier:
// plain and compound assignment, indexed assignment, and the fallback
// expression statement.
func (in *Interp) execIdentStatement(tokens []lexer.Token, idx *int) {
	name := tokens[*idx].Literal

	if *idx+1 < len(tokens) {
		switch tokens[*idx+1].Type {
		case lexer.EQ:
			*idx += 2
			value := in.evalExpr(tokens, idx)
			if err := in.env.Set(name, value, false); err != nil {
				in.reportError("%v", err)
			}
			return

		case lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN:
			op := compoundOp(tokens[*idx+1].Type)
			*idx += 2
			rhs := in.evalExpr(tokens, idx)
			current, ok := in.env.Get(name)
			if !ok {
				current = &NullValue{}
			}
			if err := in.env.Set(name, applyBinary(op, current, rhs), false); err != nil {
				in.reportError("%v", err)
			}
			return

		case lexer.LBRACKET:
			in.execIndexedAssign(tokens, idx)
			return
		}
	}

	// Expression statement, e.g. a bare function call.
	in.evalExpr(tokens, idx)
}

// compoundOp maps a compound assignment operator to the binary
// operator it reads-modifies-writes with.
func compoundOp(tt lexer.TokenType) lexer.TokenType {
	switch tt {
	case lexer.PLUS_ASSIGN:
		return lexer.PLUS
	case lexer.MINUS_ASSIGN:
		return lexer.MINUS
	case lexer.STAR_ASSIGN:
		return lexer.STAR
	case lexer.SLASH_ASSIGN:
		return lexer.SLASH
	}
	return tt
}

// execIndexedAssign handles NAME[index] = expr: in-place array element
// replacement for an integer index, dict key set for a string index.
// When the statement turns out not to be an assignment it is re-read
// as an expression statement.
func (in *Interp) execIndexedAssign(tokens []lexer.Token, idx *int) {
	start := *idx
	name := tokens[*idx].Literal
	*idx += 2 // skip name and [
	index := in.evalExpr(tokens, idx)
	in.expect(tokens, idx, lexer.RBRACKET)

	if !peekIs(tokens, *idx, lexer.EQ) {
		// An index read in statement position, e.g. `a[0]`.
		*idx = start
		in.evalExpr(tokens, idx)
		return
	}
	*idx++
	value := in.evalExpr(tokens, idx)

	stored, ok := in.env.Get(name)
	if !ok {
		return
	}
	switch target := stored.(type) {
	case *ArrayValue:
		if n, ok := index.(*NumberValue); ok {
			i := int(n.Value)
			// Out-of-range writes are no-ops.
			if i >= 0 && i < len(target.Elements) {
				target.Elements[i] = value.Copy()
			}
		}
	case *DictValue:
		if s, ok := index.(*StringValue); ok {
			target.Set(s.Value, value.Copy())
		}
	}
}

// execStart handles `start http-server [port=N] [root=PATH]` and
// `start server(port)`.
func (in *Interp) execStart(tokens []lexer.Token, idx *int) {
	*idx++ // skip start

	if peekIs(tokens, *idx, lexer.HTTP) {
		*idx++
		in.expect(tokens, idx, lexer.MINUS)
		in.expect(tokens, idx, lexer.SERVER)

		port := 8000
		root := "."
		// Bounded option scan: consume only key=value groups so a
		// mid-script statement does not swallow the rest of the stream.
		for *idx+2 < len(tokens) &&
			tokens[*idx].Type == lexer.IDENT &&
			tokens[*idx+1].Type == lexer.EQ {
			key := tokens[*idx].Literal
			*idx += 2
			switch key {
			case "port":
				if n, err := strconv.Atoi(tokens[*idx].Literal); err == nil {
					port = n
				}
				*idx++
			case "root":
				root = tokens[*idx].Literal
				*idx++
			default:
				*idx++
			}
		}
		in.startServer(port, root)
		return
	}

	if peekIs(tokens, *idx, lexer.SERVER) {
		*idx++
		if peekIs(tokens, *idx, lexer.LPAREN) {
			*idx++
			port := in.evalExpr(tokens, idx)
			in.expect(tokens, idx, lexer.RPAREN)
			in.startServer(int(numberOf(port)), ".")
		}
	}
}

func (in *Interp) startServer(port int, root string) {
	if in.http == nil {
		return
	}
	if err := in.http.Start(port, root); err != nil {
		in.reportError("server failed: %v", err)
	}
}

func (in *Interp) execStop(tokens []lexer.Token, idx *int) {
	*idx++ // skip stop
	if !peekIs(tokens, *idx, lexer.SERVER) {
		return
	}
	*idx++
	if in.http == nil {
		return
	}
	if err := in.http.Stop(); err != nil {
		in.reportError("server stop failed: %v", err)
		return
	}
	fmt.Fprintln(in.stdout, "Server stopped")
}

func (in *Interp) execWrite(tokens []lexer.Token, idx *int) {
	*idx++ // skip write
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return
	}
	*idx++
	args := in.evalArgs(tokens, idx)
	if in.fs == nil || len(args) < 2 {
		return
	}
	if err := in.fs.Write(args[0].String(), args[1].String()); err != nil {
		in.reportError("write failed: %v", err)
	}
}

func (in *Interp) execDelete(tokens []lexer.Token, idx *int) {
	*idx++ // skip delete
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return
	}
	*idx++
	args := in.evalArgs(tokens, idx)
	if in.fs == nil || len(args) < 1 {
		return
	}
	if err := in.fs.Delete(args[0].String()); err != nil {
		in.reportError("delete failed: %v", err)
	}
}

func (in *Interp) execMkdir(tokens []lexer.Token, idx *int) {
	*idx++ // skip mkdir
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return
	}
	*idx++
	args := in.evalArgs(tokens, idx)
	if in.fs == nil || len(args) < 1 {
		return
	}
	if err := in.fs.Mkdir(args[0].String()); err != nil {
		in.reportError("mkdir failed: %v", err)
	}
}

// execGraphics forwards clear/rect/circle/render statements to the
// graphics host when the first argument is a window handle.
func (in *Interp) execGraphics(tokens []lexer.Token, idx *int) {
	kind := tokens[*idx].Type
	*idx++
	if !peekIs(tokens, *idx, lexer.LPAREN) {
		return
	}
	*idx++
	args := in.evalArgs(tokens, idx)
	if in.gfx == nil || len(args) == 0 {
		return
	}
	win, ok := args[0].(*WindowValue)
	if !ok {
		return
	}

	num := func(i int) int {
		if i < len(args) {
			return int(numberOf(args[i]))
		}
		return 0
	}

	switch kind {
	case lexer.CLEAR:
		in.gfx.Clear(win.Handle, num(1), num(2), num(3))
	case lexer.RECT:
		in.gfx.Rect(win.Handle, num(1), num(2), num(3), num(4), num(5), num(6), num(7), num(8))
	case lexer.CIRCLE:
		in.gfx.Circle(win.Handle, num(1), num(2), num(3), num(4), num(5), num(6), num(7))
	case lexer.RENDER:
		in.gfx.Render(win.Handle)
	}
}
