package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	env := NewEnvironment()

	require.NoError(t, env.Set("x", &NumberValue{Value: 1}, false))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1.0, v.(*NumberValue).Value)

	_, ok = env.Get("missing")
	assert.False(t, ok)
}

func TestSetOverwritesExistingBinding(t *testing.T) {
	env := NewEnvironment()

	require.NoError(t, env.Set("x", &NumberValue{Value: 1}, false))
	require.NoError(t, env.Set("x", &NumberValue{Value: 2}, false))

	assert.Equal(t, 1, env.Len(), "overwrite must not create a second binding")
	v, _ := env.Get("x")
	assert.Equal(t, 2.0, v.(*NumberValue).Value)
}

func TestSetOverwritesAcrossScopes(t *testing.T) {
	env := NewEnvironment()

	require.NoError(t, env.Set("x", &NumberValue{Value: 1}, false))
	env.SetScope(1)
	require.NoError(t, env.Set("x", &NumberValue{Value: 2}, false))

	// No new binding is created, regardless of the current scope.
	assert.Equal(t, 1, env.Len())
}

func TestConstDiscipline(t *testing.T) {
	env := NewEnvironment()

	require.NoError(t, env.Set("pi", &NumberValue{Value: 3.14}, true))
	err := env.Set("pi", &NumberValue{Value: 3}, false)
	require.Error(t, err)
	assert.Equal(t, "Cannot reassign constant 'pi'", err.Error())

	v, _ := env.Get("pi")
	assert.Equal(t, 3.14, v.(*NumberValue).Value, "old value must be preserved")
}

func TestDefineShadows(t *testing.T) {
	env := NewEnvironment()

	require.NoError(t, env.Set("n", &NumberValue{Value: 5}, false))
	env.SetScope(1)
	env.Define("n", &NumberValue{Value: 4}, false)

	assert.Equal(t, 2, env.Len())
	v, _ := env.Get("n")
	assert.Equal(t, 4.0, v.(*NumberValue).Value, "nearest binding wins")

	env.Truncate(1)
	env.SetScope(0)
	v, _ = env.Get("n")
	assert.Equal(t, 5.0, v.(*NumberValue).Value, "outer binding restored after pop")
}

func TestSetCopiesValue(t *testing.T) {
	env := NewEnvironment()

	arr := &ArrayValue{Elements: []Value{&NumberValue{Value: 1}}}
	require.NoError(t, env.Set("a", arr, false))

	// Mutating the original must not reach the stored copy.
	arr.Elements[0] = &NumberValue{Value: 9}
	v, _ := env.Get("a")
	assert.Equal(t, 1.0, v.(*ArrayValue).Elements[0].(*NumberValue).Value)
}

func TestTruncate(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Set("a", &NumberValue{Value: 1}, false))
	mark := env.Len()
	env.Define("b", &NumberValue{Value: 2}, false)
	env.Define("c", &NumberValue{Value: 3}, false)

	env.Truncate(mark)
	assert.Equal(t, mark, env.Len())
	_, ok := env.Get("b")
	assert.False(t, ok)
}

func TestBindingsFrom(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Set("before", &NumberValue{Value: 0}, false))
	mark := env.Len()
	env.Define("x", &NumberValue{Value: 1}, false)
	env.Define("y", &NumberValue{Value: 2}, false)

	names, values := env.BindingsFrom(mark)
	require.Equal(t, []string{"x", "y"}, names)
	assert.Equal(t, 1.0, values[0].(*NumberValue).Value)
	assert.Equal(t, 2.0, values[1].(*NumberValue).Value)
}
