// Package compiler implements vela's single-pass compiler: a Pratt parser
// that emits bytecode directly as it recognizes each expression and
// statement, with no intermediate AST.
package compiler

import (
	"strconv"
	"strings"

	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/scanner"
	"github.com/vela-lang/vela/lang/table"
	"github.com/vela-lang/vela/lang/token"
	"github.com/vela-lang/vela/lang/value"
)

const maxLocals = 1 << 16
const maxParams = 255

// funcType distinguishes the implicit top-level script from a real
// function declaration, since only the latter can use 'return' with a
// value and needs a name.
type funcType int

const (
	typeFunction funcType = iota
	typeScript
)

type local struct {
	name       string
	depth      int // -1 means "declared but not yet initialized"
	isCaptured bool
}

type upvalueRef struct {
	index   int
	isLocal bool
}

// unit is one nested level of function compilation; enclosing links form
// the compile-time call stack that resolveUpvalue walks.
type unit struct {
	enclosing *unit
	fn        *object.Function
	fnType    funcType

	locals   []local
	upvalues []upvalueRef

	scopeDepth int

	// loopStart/loopDepth describe the innermost enclosing loop, for
	// 'continue' to jump back to and to know how many scopes it crosses.
	// loopStart == -1 means "not inside a loop".
	loopStart int
	loopDepth int
}

// Compiler drives a single compile of one source buffer into one top-level
// Function. It is not reusable across compiles.
type Compiler struct {
	scanner  *scanner.Scanner
	prev     scanner.Token
	cur      scanner.Token
	interner *table.Interner

	errs      ErrorList
	panicMode bool

	unit *unit
}

// Compile compiles source into a top-level script Function, interning every
// string and identifier through interner. On failure it returns a non-nil
// error (an ErrorList) and a nil Function.
func Compile(source string, interner *table.Interner) (*object.Function, error) {
	c := &Compiler{
		scanner:  scanner.New(source),
		interner: interner,
	}
	c.pushUnit(typeScript, "")
	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	fn := c.endUnit()
	if len(c.errs) > 0 {
		c.errs.Sort()
		return nil, c.errs.Err()
	}
	return fn, nil
}

// --- token stream helpers ---

func (c *Compiler) advance() {
	c.prev = c.cur
	for {
		c.cur = c.scanner.Scan()
		if c.cur.Type != token.ILLEGAL {
			break
		}
		c.errorAtCurrentRaw(c.cur.Lexeme)
	}
}

func (c *Compiler) check(tt token.Token) bool { return c.cur.Type == tt }

func (c *Compiler) match(tt token.Token) bool {
	if !c.check(tt) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(tt token.Token, msg string) {
	if c.cur.Type == tt {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// --- error reporting ---

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.cur, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.prev, msg) }

// errorAtCurrentRaw reports a scanner-produced message verbatim, with no
// "at '...'" framing, since the offending text is itself the diagnostic.
func (c *Compiler) errorAtCurrentRaw(msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errs.Add(Position{Line: c.cur.Line}, "", msg)
}

func (c *Compiler) errorAt(tok scanner.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	var where string
	switch tok.Type {
	case token.EOF:
		where = "at end"
	default:
		where = "at '" + tok.Lexeme + "'"
	}
	c.errs.Add(Position{Line: tok.Line}, where, msg)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so one error doesn't cascade into a flood of follow-on ones.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.cur.Type != token.EOF {
		if c.prev.Type == token.SEMI {
			return
		}
		switch c.cur.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN, token.CONTINUE:
			return
		}
		c.advance()
	}
}

// --- bytecode emission ---

func (c *Compiler) curChunk() *chunk.Chunk { return &c.unit.fn.Chunk }

func (c *Compiler) emitByte(b byte) { c.curChunk().WriteByte(b, c.prev.Line) }

func (c *Compiler) emitOp(op chunk.OpCode) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op chunk.OpCode, b byte) {
	c.emitByte(byte(op))
	c.emitByte(b)
}

func (c *Compiler) emitOpWord(op chunk.OpCode, v uint16) {
	c.emitByte(byte(op))
	c.curChunk().WriteUint16(v, c.prev.Line)
}

func (c *Compiler) emitReturn() {
	c.emitOp(chunk.OpNil)
	c.emitOp(chunk.OpReturn)
}

// emitJump emits a jump instruction with a placeholder 2-byte operand and
// returns the offset of that operand, to be fixed up by patchJump.
func (c *Compiler) emitJump(op chunk.OpCode) int {
	c.emitByte(byte(op))
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.curChunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.curChunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("Too much code to jump over.")
		return
	}
	code := c.curChunk().Code
	code[offset] = byte(jump >> 8)
	code[offset+1] = byte(jump)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.OpLoop)
	offset := len(c.curChunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

// emitConstant adds v to the current chunk's constant pool and emits a
// CONSTANT or CONSTANT_LONG instruction, depending on how wide its index
// turns out to be.
func (c *Compiler) emitConstant(v value.Value) {
	idx := c.addConstant(v)
	if idx <= 0xff {
		c.emitOpByte(chunk.OpConstant, byte(idx))
	} else {
		c.emitOpWord(chunk.OpConstantLong, uint16(idx))
	}
}

func (c *Compiler) addConstant(v value.Value) int {
	idx, err := c.curChunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return idx
}

// emitVarOp picks the short or long opcode variant depending on how wide
// idx is, matching the CONSTANT/CONSTANT_LONG pattern for every family of
// variable-access instruction (local, global, upvalue).
func (c *Compiler) emitVarOp(short, long chunk.OpCode, idx int) {
	if idx <= 0xff {
		c.emitOpByte(short, byte(idx))
	} else {
		c.emitOpWord(long, uint16(idx))
	}
}

// --- unit (per-function compile state) management ---

func (c *Compiler) pushUnit(fnType funcType, name string) {
	u := &unit{
		enclosing:  c.unit,
		fn:         object.NewFunction(),
		fnType:     fnType,
		scopeDepth: 0,
		loopStart:  -1,
		loopDepth:  0,
	}
	if name != "" {
		u.fn.Name = c.interner.Intern(name)
	}
	// Slot 0 is reserved in every frame (script or function), matching the
	// VM's convention that the callee's own closure/script value occupies
	// the frame's base slot.
	u.locals = append(u.locals, local{name: "", depth: 0})
	c.unit = u
}

func (c *Compiler) endUnit() *object.Function {
	c.emitReturn()
	fn := c.unit.fn
	c.unit = c.unit.enclosing
	return fn
}

func (c *Compiler) beginScope() { c.unit.scopeDepth++ }

// endScope pops every local declared in the scope just exited. Runs of
// consecutive non-captured locals collapse into a single POP or POPN (one
// POPN 255 per full 255 locals when the run is longer than that); a
// captured local flushes the pending run first and then emits its own
// CLOSE_UPVALUE.
func (c *Compiler) endScope() {
	u := c.unit
	u.scopeDepth--

	run := 0
	flush := func() {
		for run > 255 {
			c.emitOpByte(chunk.OpPopN, 255)
			run -= 255
		}
		switch run {
		case 0:
		case 1:
			c.emitOp(chunk.OpPop)
		default:
			c.emitOpByte(chunk.OpPopN, byte(run))
		}
		run = 0
	}

	for len(u.locals) > 0 && u.locals[len(u.locals)-1].depth > u.scopeDepth {
		top := u.locals[len(u.locals)-1]
		if top.isCaptured {
			flush()
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			run++
		}
		u.locals = u.locals[:len(u.locals)-1]
	}
	flush()
}

// --- declarations ---

func (c *Compiler) declaration() {
	switch {
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

func (c *Compiler) function(fnType funcType) {
	name := c.prev.Lexeme
	c.pushUnit(fnType, name)
	c.beginScope()

	c.consume(token.LPAREN, "Expect '(' after function name.")
	if !c.check(token.RPAREN) {
		for {
			c.unit.fn.Arity++
			if c.unit.fn.Arity > maxParams {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConst := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConst)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after parameters.")
	c.consume(token.LBRACE, "Expect '{' before function body.")
	c.block()

	childUpvalues := c.unit.upvalues
	fn := c.endUnit()

	idx := c.addConstant(fn)
	if idx <= 0xff {
		c.emitOpByte(chunk.OpClosure, byte(idx))
	} else {
		c.emitOpWord(chunk.OpClosureLong, uint16(idx))
	}
	for _, uv := range childUpvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index >> 8))
		c.emitByte(byte(uv.index))
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	name := c.prev.Lexeme
	if c.match(token.EQ) {
		if c.unit.scopeDepth == 0 {
			// A global's initializer must not read the global itself: the name
			// is shadowed by an uninitialized local while the initializer is
			// compiled, so resolveLocal reports the error.
			c.unit.locals = append(c.unit.locals, local{name: name, depth: -1})
			c.expression()
			c.unit.locals = c.unit.locals[:len(c.unit.locals)-1]
		} else {
			c.expression()
		}
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.SEMI, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

// parseVariable consumes an identifier, declares it (as a local if we're
// inside a scope), and returns the constant-pool index to use for
// DEFINE_GLOBAL if it turns out to be a global (0 is a harmless placeholder
// for locals, which ignore the return value).
func (c *Compiler) parseVariable(errMsg string) int {
	c.consume(token.IDENT, errMsg)
	name := c.prev.Lexeme
	if c.unit.scopeDepth > 0 {
		c.declareLocal(name)
		return 0
	}
	return c.identifierConstant(name)
}

func (c *Compiler) identifierConstant(name string) int {
	return c.addConstant(c.interner.Intern(name))
}

func (c *Compiler) declareLocal(name string) {
	u := c.unit
	if len(u.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	u.locals = append(u.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.unit.scopeDepth == 0 {
		return
	}
	c.unit.locals[len(c.unit.locals)-1].depth = c.unit.scopeDepth
}

func (c *Compiler) defineVariable(global int) {
	if c.unit.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitVarOp(chunk.OpDefineGlobal, chunk.OpDefineGlobalLong, global)
}

// --- statements ---

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.CONTINUE):
		c.continueStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) returnStatement() {
	if c.unit.fnType == typeScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.SEMI) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMI, "Expect ';' after return value.")
	c.emitOp(chunk.OpReturn)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.curChunk().Code)
	prevStart, prevDepth := c.unit.loopStart, c.unit.loopDepth

	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)

	c.unit.loopStart = loopStart
	c.unit.loopDepth = c.unit.scopeDepth
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)

	c.unit.loopStart, c.unit.loopDepth = prevStart, prevDepth
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMI):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.curChunk().Code)
	exitJump := -1
	if !c.match(token.SEMI) {
		c.expression()
		c.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.check(token.RPAREN) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.curChunk().Code)
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RPAREN, "Expect ')' after for clauses.")
	}

	prevStart, prevDepth := c.unit.loopStart, c.unit.loopDepth
	c.unit.loopStart = loopStart
	c.unit.loopDepth = c.unit.scopeDepth

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}

	c.unit.loopStart, c.unit.loopDepth = prevStart, prevDepth
	c.endScope()
}

// continueStatement jumps back to the innermost loop's continue target (its
// condition check, or a for loop's increment clause). Before the jump it
// emits a POP, or a CLOSE_UPVALUE for a captured one, for every local
// declared inside the loop body, so the stack at the back-edge has the same
// depth as at the loop start. The compile-time locals are left as they are,
// since the rest of the block after the 'continue' still refers to them.
func (c *Compiler) continueStatement() {
	if c.unit.loopStart == -1 {
		c.error("Can't use 'continue' outside of a loop.")
	}
	c.consume(token.SEMI, "Expect ';' after 'continue'.")
	u := c.unit
	for i := len(u.locals) - 1; i >= 0 && u.locals[i].depth > u.loopDepth; i-- {
		if u.locals[i].isCaptured {
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			c.emitOp(chunk.OpPop)
		}
	}
	c.emitLoop(c.unit.loopStart)
}

// --- expressions ---

func (c *Compiler) expression() { c.parsePrecedence(PrecAssignment) }

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := getRule(c.prev.Type)
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.cur.Type).prec {
		c.advance()
		infix := getRule(c.prev.Type).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQ) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) grouping(bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(bool) {
	opType := c.prev.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.MINUS:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func (c *Compiler) binary(bool) {
	opType := c.prev.Type
	rule := getRule(opType)
	c.parsePrecedence(rule.prec + 1)
	switch opType {
	case token.PLUS:
		c.emitOp(chunk.OpAdd)
	case token.MINUS:
		c.emitOp(chunk.OpSubtract)
	case token.STAR:
		c.emitOp(chunk.OpMultiply)
	case token.SLASH:
		c.emitOp(chunk.OpDivide)
	case token.BANG_EQ:
		c.emitOp(chunk.OpNotEqual)
	case token.EQ_EQ:
		c.emitOp(chunk.OpEqual)
	case token.GT:
		c.emitOp(chunk.OpGreater)
	case token.GT_EQ:
		c.emitOp(chunk.OpGreaterEqual)
	case token.LT:
		c.emitOp(chunk.OpLess)
	case token.LT_EQ:
		c.emitOp(chunk.OpLessEqual)
	}
}

func (c *Compiler) ternary(bool) {
	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecTernary)

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	c.consume(token.COLON, "Expect ':' in ternary expression.")
	c.parsePrecedence(PrecTernary)
	c.patchJump(elseJump)
}

func (c *Compiler) and_(bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_(bool) {
	endJump := c.emitJump(chunk.OpJumpIfTrue)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(bool) {
	argCount := c.argumentList()
	c.emitOpByte(chunk.OpCall, byte(argCount))
}

func (c *Compiler) argumentList() int {
	count := 0
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if count == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return count
}

func (c *Compiler) number(bool) {
	text := strings.ReplaceAll(c.prev.Lexeme, "_", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(f))
}

func (c *Compiler) string(bool) {
	lexeme := c.prev.Lexeme
	chars := lexeme[1 : len(lexeme)-1]
	c.emitConstant(c.interner.Intern(chars))
}

func (c *Compiler) literal(bool) {
	switch c.prev.Type {
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.NIL:
		c.emitOp(chunk.OpNil)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev.Lexeme, canAssign)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getShort, getLong, setShort, setLong chunk.OpCode
	arg := c.resolveLocal(c.unit, name)
	switch {
	case arg != -1:
		getShort, getLong = chunk.OpGetLocal, chunk.OpGetLocalLong
		setShort, setLong = chunk.OpSetLocal, chunk.OpSetLocalLong
	default:
		if arg = c.resolveUpvalue(c.unit, name); arg != -1 {
			getShort, getLong = chunk.OpGetUpvalue, chunk.OpGetUpvalueLong
			setShort, setLong = chunk.OpSetUpvalue, chunk.OpSetUpvalueLong
		} else {
			arg = c.identifierConstant(name)
			getShort, getLong = chunk.OpGetGlobal, chunk.OpGetGlobalLong
			setShort, setLong = chunk.OpSetGlobal, chunk.OpSetGlobalLong
		}
	}

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitVarOp(setShort, setLong, arg)
	} else {
		c.emitVarOp(getShort, getLong, arg)
	}
}

// resolveLocal looks for name among u's own locals, innermost first. It
// returns -1 if not found, reporting a compile error if it finds the name
// mid-initialization (a local reading itself in its own initializer).
func (c *Compiler) resolveLocal(u *unit, name string) int {
	for i := len(u.locals) - 1; i >= 0; i-- {
		if u.locals[i].name == name {
			if u.locals[i].depth == -1 {
				c.error("Can't read variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue walks the enclosing-unit chain looking for name as a
// local in some ancestor function, wiring up an upvalue chain (index,
// isLocal) at every level in between. Each level's addUpvalue call
// deduplicates against upvalues already captured at that level.
func (c *Compiler) resolveUpvalue(u *unit, name string) int {
	if u.enclosing == nil {
		return -1
	}
	if local := c.resolveLocal(u.enclosing, name); local != -1 {
		u.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(u, local, true)
	}
	if up := c.resolveUpvalue(u.enclosing, name); up != -1 {
		return c.addUpvalue(u, up, false)
	}
	return -1
}

func (c *Compiler) addUpvalue(u *unit, index int, isLocal bool) int {
	for i, uv := range u.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	u.upvalues = append(u.upvalues, upvalueRef{index: index, isLocal: isLocal})
	u.fn.UpvalueCount = len(u.upvalues)
	return len(u.upvalues) - 1
}
