package value

// ObjKind identifies the concrete shape of a heap Object.
type ObjKind uint8

const (
	ObjString ObjKind = iota
	ObjFunction
	ObjNative
	ObjClosure
	ObjUpvalue
)

func (k ObjKind) String() string {
	switch k {
	case ObjString:
		return "string"
	case ObjFunction:
		return "function"
	case ObjNative:
		return "native"
	case ObjClosure:
		return "closure"
	case ObjUpvalue:
		return "upvalue"
	default:
		return "<invalid obj kind>"
	}
}

// Object is the common header embedded in every heap-allocated value. It
// carries the object's concrete kind tag and the intrusive singly-linked
// list pointer the VM uses to track the closures, upvalues and natives it
// allocates, independent of Go's own garbage collector. Strings and
// functions are not linked into that list.
type Object struct {
	kind ObjKind
	next *Object
}

// NewObject returns an Object header tagged with kind, ready to be embedded
// in a concrete heap type (String, Function, Native, Closure, Upvalue).
func NewObject(kind ObjKind) Object {
	return Object{kind: kind}
}

func (o *Object) Kind() Kind       { return KindObject }
func (o *Object) ObjKind() ObjKind { return o.kind }

// Next returns the next object in the VM's intrusive allocation list.
func (o *Object) Next() *Object { return o.next }

// SetNext links o to the next node of the VM's intrusive allocation list.
// Only the allocator (package vm) should call this.
func (o *Object) SetNext(next *Object) { o.next = next }
