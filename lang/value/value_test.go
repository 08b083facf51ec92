package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vela-lang/vela/lang/value"
)

func TestTruthy(t *testing.T) {
	assert.False(t, value.Truthy(value.Nil{}))
	assert.False(t, value.Truthy(value.Bool(false)))
	assert.True(t, value.Truthy(value.Bool(true)))
	assert.True(t, value.Truthy(value.Number(0)))
	assert.True(t, value.Truthy(value.NewString("")))
}

func TestEqualScalars(t *testing.T) {
	assert.True(t, value.Equal(value.Nil{}, value.Nil{}))
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.False(t, value.Equal(value.Number(1), value.Number(2)))
	assert.False(t, value.Equal(value.Number(1), value.Bool(true)))
}

func TestEqualObjectsByIdentity(t *testing.T) {
	a := value.NewString("hi")
	b := value.NewString("hi") // distinct, unInterned allocation
	assert.True(t, value.Equal(a, a))
	assert.False(t, value.Equal(a, b))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "3", value.Number(3).String())
	assert.Equal(t, "3.5", value.Number(3.5).String())
}
