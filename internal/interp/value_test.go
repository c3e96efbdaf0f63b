package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberRendering(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{3.14, "3.14"},
		{1e21, "1e+21"},
		{0.5, "0.5"},
		{100000, "100000"},
	}

	for _, tt := range tests {
		n := &NumberValue{Value: tt.value}
		assert.Equal(t, tt.expected, n.String())
	}
}

func TestScalarRendering(t *testing.T) {
	assert.Equal(t, "null", (&NullValue{}).String())
	assert.Equal(t, "undefined", (&UndefinedValue{}).String())
	assert.Equal(t, "true", (&BoolValue{Value: true}).String())
	assert.Equal(t, "false", (&BoolValue{}).String())
	assert.Equal(t, "hello", (&StringValue{Value: "hello"}).String())
}

func TestArrayRendering(t *testing.T) {
	arr := &ArrayValue{Elements: []Value{
		&NumberValue{Value: 1},
		&StringValue{Value: "two"},
		&ArrayValue{Elements: []Value{&NumberValue{Value: 3}}},
	}}
	assert.Equal(t, "[1, two, [3]]", arr.String())
	assert.Equal(t, "[]", (&ArrayValue{}).String())
}

func TestDictRendering(t *testing.T) {
	d := NewDict()
	d.Set("name", &StringValue{Value: "zen"})
	d.Set("major", &NumberValue{Value: 4})
	assert.Equal(t, "{name: zen, major: 4}", d.String())

	// Last write wins without disturbing insertion order.
	d.Set("name", &StringValue{Value: "zenith"})
	assert.Equal(t, "{name: zenith, major: 4}", d.String())
}

func TestArrayDeepCopy(t *testing.T) {
	inner := &ArrayValue{Elements: []Value{&NumberValue{Value: 1}}}
	arr := &ArrayValue{Elements: []Value{inner, &NumberValue{Value: 2}}}

	cp := arr.Copy().(*ArrayValue)
	cp.Elements[0].(*ArrayValue).Elements[0] = &NumberValue{Value: 99}
	cp.Elements[1] = &NumberValue{Value: 99}

	assert.Equal(t, 1.0, arr.Elements[0].(*ArrayValue).Elements[0].(*NumberValue).Value)
	assert.Equal(t, 2.0, arr.Elements[1].(*NumberValue).Value)
}

func TestDictDeepCopy(t *testing.T) {
	d := NewDict()
	d.Set("list", &ArrayValue{Elements: []Value{&NumberValue{Value: 1}}})

	cp := d.Copy().(*DictValue)
	cp.Get("list").(*ArrayValue).Elements[0] = &NumberValue{Value: 9}
	cp.Set("extra", &BoolValue{Value: true})

	assert.Equal(t, 1.0, d.Get("list").(*ArrayValue).Elements[0].(*NumberValue).Value)
	assert.Nil(t, d.Get("extra"))
}

func TestTruthiness(t *testing.T) {
	assert.True(t, truthy(&BoolValue{Value: true}))
	assert.False(t, truthy(&BoolValue{}))
	assert.True(t, truthy(&NumberValue{Value: 1}))
	assert.False(t, truthy(&NumberValue{}))
	assert.True(t, truthy(&StringValue{Value: "x"}))
	assert.False(t, truthy(&StringValue{}))
	assert.False(t, truthy(&NullValue{}))
	assert.False(t, truthy(&UndefinedValue{}))
	assert.True(t, truthy(&ArrayValue{Elements: []Value{&NullValue{}}}))
	assert.False(t, truthy(&ArrayValue{}))
}

func TestFunctionCopySharesHandle(t *testing.T) {
	fn := &FunctionValue{Name: "f"}
	assert.Same(t, Value(fn), fn.Copy())
}
