package vm

import (
	"golang.org/x/exp/slices"

	"github.com/vela-lang/vela/lang/object"
)

// captureUpvalue returns the open upvalue for the stack slot at index,
// reusing an existing one if any closure already captured that slot, or
// else allocating and inserting a new one while preserving the
// descending-StackIndex sort of vm.openUpvalues.
func (vm *VM) captureUpvalue(index int) *object.Upvalue {
	insertAt := slices.IndexFunc(vm.openUpvalues, func(u *object.Upvalue) bool {
		return u.StackIndex <= index
	})
	if insertAt != -1 && vm.openUpvalues[insertAt].StackIndex == index {
		return vm.openUpvalues[insertAt]
	}

	created := object.NewUpvalue(&vm.stack[index], index)
	vm.track(&created.Object)
	if insertAt == -1 {
		vm.openUpvalues = append(vm.openUpvalues, created)
	} else {
		vm.openUpvalues = slices.Insert(vm.openUpvalues, insertAt, created)
	}
	return created
}

// closeUpvalues closes every open upvalue whose StackIndex is at or above
// from, copying each one's current stack value into its own cell. Since
// the list is sorted by descending StackIndex, these are always exactly
// the leading entries.
func (vm *VM) closeUpvalues(from int) {
	n := 0
	for n < len(vm.openUpvalues) && vm.openUpvalues[n].StackIndex >= from {
		vm.openUpvalues[n].Close()
		n++
	}
	vm.openUpvalues = vm.openUpvalues[n:]
}
