package object_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/value"
)

func TestFunctionString(t *testing.T) {
	fn := object.NewFunction()
	require.Equal(t, "<script>", fn.String())

	fn.Name = value.NewString("fact")
	require.Equal(t, "<fn fact>", fn.String())
}

func TestClosureSharesUpvalueStorage(t *testing.T) {
	fn := object.NewFunction()
	fn.UpvalueCount = 1
	cl1 := object.NewClosure(fn)
	cl2 := object.NewClosure(fn)

	var slot value.Value = value.Number(1)
	up := object.NewUpvalue(&slot, 0)
	cl1.Upvalues[0] = up
	cl2.Upvalues[0] = up

	cl1.Upvalues[0].Set(value.Number(42))
	require.Equal(t, value.Number(42), cl2.Upvalues[0].Get())

	up.Close()
	require.False(t, up.IsOpen())
	require.Equal(t, value.Number(42), up.Get())
}

func TestNativeString(t *testing.T) {
	n := object.NewNative("clock", 0, func(args []value.Value) (value.Value, error) {
		return value.Number(0), nil
	})
	require.Equal(t, "<native fn clock>", n.String())
}
