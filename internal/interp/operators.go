package interp

import (
	"math"

	"github.com/kotoedoff/zenith/internal/lexer"
)

// Numeric equality tolerance. Two numbers within this distance compare
// equal, so 0.1 + 0.2 == 0.3 holds.
const epsilon = 1e-9

// binaryPrecedence maps binary operator token types to their binding
// strength. Higher binds tighter. Operators absent from the table end
// an expression.
var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:  1,
	lexer.AND: 2,

	lexer.BIT_OR:  3,
	lexer.BIT_XOR: 4,
	lexer.BIT_AND: 5,

	lexer.EQ_EQ:     6,
	lexer.EQ_EQ_EQ:  6,
	lexer.NOT_EQ:    6,
	lexer.NOT_EQ_EQ: 6,

	lexer.LESS:       7,
	lexer.GREATER:    7,
	lexer.LESS_EQ:    7,
	lexer.GREATER_EQ: 7,

	lexer.SHL: 8,
	lexer.SHR: 8,

	lexer.PLUS:  9,
	lexer.MINUS: 9,

	lexer.STAR:    10,
	lexer.SLASH:   10,
	lexer.PERCENT: 10,

	lexer.POWER: 11,
}

// rightAssociative reports whether a binary operator groups to the
// right; only ** does.
func rightAssociative(op lexer.TokenType) bool {
	return op == lexer.POWER
}

// applyBinary combines two operand values with a binary operator.
func applyBinary(op lexer.TokenType, left, right Value) Value {
	switch op {
	case lexer.PLUS:
		// A string left operand concatenates the rendering of the right.
		if s, ok := left.(*StringValue); ok {
			return &StringValue{Value: s.Value + right.String()}
		}
		return arithmetic(op, left, right)
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.POWER,
		lexer.BIT_AND, lexer.BIT_OR, lexer.BIT_XOR, lexer.SHL, lexer.SHR:
		return arithmetic(op, left, right)
	case lexer.EQ_EQ, lexer.EQ_EQ_EQ, lexer.NOT_EQ, lexer.NOT_EQ_EQ,
		lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ:
		return compare(op, left, right)
	case lexer.AND:
		return &BoolValue{Value: truthy(left) && truthy(right)}
	case lexer.OR:
		return &BoolValue{Value: truthy(left) || truthy(right)}
	}
	return &NullValue{}
}

// arithmetic evaluates the numeric operators. Non-numeric operands
// coerce to 0; division and modulo by zero yield 0; bitwise operators
// truncate to signed 64-bit integers, operate, then widen back.
func arithmetic(op lexer.TokenType, left, right Value) Value {
	l := numberOf(left)
	r := numberOf(right)

	var out float64
	switch op {
	case lexer.PLUS:
		out = l + r
	case lexer.MINUS:
		out = l - r
	case lexer.STAR:
		out = l * r
	case lexer.SLASH:
		if r != 0 {
			out = l / r
		}
	case lexer.PERCENT:
		if r != 0 {
			out = math.Mod(l, r)
		}
	case lexer.POWER:
		out = math.Pow(l, r)
	case lexer.BIT_AND:
		out = float64(int64(l) & int64(r))
	case lexer.BIT_OR:
		out = float64(int64(l) | int64(r))
	case lexer.BIT_XOR:
		out = float64(int64(l) ^ int64(r))
	case lexer.SHL:
		out = float64(int64(l) << int64(r))
	case lexer.SHR:
		out = float64(int64(l) >> int64(r))
	}
	return &NumberValue{Value: out}
}

// compare evaluates the comparison operators. Numbers compare with the
// epsilon tolerance for equality and strictly for ordering; strings
// compare by byte order and define only equality and inequality.
// Mixed-type comparison yields false.
func compare(op lexer.TokenType, left, right Value) Value {
	result := false

	switch lv := left.(type) {
	case *NumberValue:
		if rv, ok := right.(*NumberValue); ok {
			l, r := lv.Value, rv.Value
			switch op {
			case lexer.EQ_EQ, lexer.EQ_EQ_EQ:
				result = math.Abs(l-r) < epsilon
			case lexer.NOT_EQ, lexer.NOT_EQ_EQ:
				result = math.Abs(l-r) >= epsilon
			case lexer.LESS:
				result = l < r
			case lexer.GREATER:
				result = l > r
			case lexer.LESS_EQ:
				result = l <= r
			case lexer.GREATER_EQ:
				result = l >= r
			}
		}
	case *StringValue:
		if rv, ok := right.(*StringValue); ok {
			switch op {
			case lexer.EQ_EQ, lexer.EQ_EQ_EQ:
				result = lv.Value == rv.Value
			case lexer.NOT_EQ, lexer.NOT_EQ_EQ:
				result = lv.Value != rv.Value
			}
		}
	case *BoolValue:
		if rv, ok := right.(*BoolValue); ok {
			switch op {
			case lexer.EQ_EQ, lexer.EQ_EQ_EQ:
				result = lv.Value == rv.Value
			case lexer.NOT_EQ, lexer.NOT_EQ_EQ:
				result = lv.Value != rv.Value
			}
		}
	}
	return &BoolValue{Value: result}
}
