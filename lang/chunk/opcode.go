package chunk

import "fmt"

// OpCode identifies one bytecode instruction. Each instruction is one opcode
// byte followed by zero or more operand bytes; multi-byte operands are
// big-endian.
type OpCode uint8

//nolint:revive
const (
	OpConstant     OpCode = iota // CONSTANT(1B idx)
	OpConstantLong               // CONSTANT_LONG(2B idx)
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpPopN // POPN(1B count)

	OpGetLocal
	OpGetLocalLong
	OpSetLocal
	OpSetLocalLong

	OpGetGlobal
	OpGetGlobalLong
	OpDefineGlobal
	OpDefineGlobalLong
	OpSetGlobal
	OpSetGlobalLong

	OpGetUpvalue
	OpGetUpvalueLong
	OpSetUpvalue
	OpSetUpvalueLong
	OpCloseUpvalue

	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	OpNot
	OpNegate

	OpPrint

	OpJump         // JUMP(2B)
	OpJumpIfTrue   // JUMP_IF_TRUE(2B), peeks, does not pop
	OpJumpIfFalse  // JUMP_IF_FALSE(2B), peeks, does not pop
	OpLoop         // LOOP(2B)

	OpCall // CALL(1B argc)

	OpReturn

	OpClosure     // CLOSURE(1B constIdx) + upvalueCount * 3B (isLocal, idxHi, idxLo)
	OpClosureLong // CLOSURE_LONG(2B constIdx) + upvalueCount * 3B
)

var opcodeNames = [...]string{
	OpConstant:         "CONSTANT",
	OpConstantLong:     "CONSTANT_LONG",
	OpNil:               "NIL",
	OpTrue:              "TRUE",
	OpFalse:             "FALSE",
	OpPop:               "POP",
	OpPopN:              "POPN",
	OpGetLocal:          "GET_LOCAL",
	OpGetLocalLong:      "GET_LOCAL_LONG",
	OpSetLocal:          "SET_LOCAL",
	OpSetLocalLong:      "SET_LOCAL_LONG",
	OpGetGlobal:         "GET_GLOBAL",
	OpGetGlobalLong:     "GET_GLOBAL_LONG",
	OpDefineGlobal:      "DEFINE_GLOBAL",
	OpDefineGlobalLong:  "DEFINE_GLOBAL_LONG",
	OpSetGlobal:         "SET_GLOBAL",
	OpSetGlobalLong:     "SET_GLOBAL_LONG",
	OpGetUpvalue:        "GET_UPVALUE",
	OpGetUpvalueLong:    "GET_UPVALUE_LONG",
	OpSetUpvalue:        "SET_UPVALUE",
	OpSetUpvalueLong:    "SET_UPVALUE_LONG",
	OpCloseUpvalue:      "CLOSE_UPVALUE",
	OpEqual:             "EQUAL_EQUAL",
	OpNotEqual:          "NOT_EQUAL",
	OpGreater:           "GREATER",
	OpGreaterEqual:      "GREATER_EQUAL",
	OpLess:              "LESS",
	OpLessEqual:         "LESS_EQUAL",
	OpAdd:               "ADD",
	OpSubtract:          "SUBTRACT",
	OpMultiply:          "MULTIPLY",
	OpDivide:            "DIVIDE",
	OpNot:               "NOT",
	OpNegate:            "NEGATE",
	OpPrint:             "PRINT",
	OpJump:              "JUMP",
	OpJumpIfTrue:        "JUMP_IF_TRUE",
	OpJumpIfFalse:       "JUMP_IF_FALSE",
	OpLoop:              "LOOP",
	OpCall:              "CALL",
	OpReturn:            "RETURN",
	OpClosure:           "CLOSURE",
	OpClosureLong:       "CLOSURE_LONG",
}

func (op OpCode) String() string {
	if int(op) >= len(opcodeNames) || opcodeNames[op] == "" {
		return fmt.Sprintf("<invalid opcode %d>", op)
	}
	return opcodeNames[op]
}
