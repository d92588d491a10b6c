package oneway

// A blockKind selects the control behavior of a Block.
type blockKind int

const (
	plainBlock blockKind = iota
	ifBlock
	ifElseBlock
	whileBlock
	secondBlock
)

// A frame is one child command together with the source line it was
// parsed from. The line is stamped onto exceptions the child raises.
type frame struct {
	cmd  Command
	line int
}

// A Block is an ordered sequence of commands that is itself a command.
// The parser builds one per if, while, or second statement, plus the
// plain block at the root of every program; an if block is upgraded in
// place to an if-else block when the parser meets its else.
type Block struct {
	kind   blockKind
	body   []frame
	elseAt int
	// inSecond records that this block sits beneath a second block,
	// possibly through intermediate blocks. It makes the no-nested-
	// second invariant structural: it holds however the tree was
	// built, not just for trees the parser made.
	inSecond bool
}

// NewBlock creates an empty plain block, which runs its children in
// order.
func NewBlock() *Block { return &Block{kind: plainBlock} }

// NewIf creates an empty conditional block, which pops a boolean and
// runs its children when it is true.
func NewIf() *Block { return &Block{kind: ifBlock} }

// NewWhile creates an empty loop block, which pops a boolean before
// every iteration and runs its children while it pops true.
func NewWhile() *Block { return &Block{kind: whileBlock} }

// NewSecond creates an empty second block, which runs its children
// with stack operations redirected to the secondary stack.
func NewSecond() *Block { return &Block{kind: secondBlock} }

// Append adds a child command parsed from the given source line.
// Appending a command that is or contains a second block anywhere
// beneath a second context fails with a SecondError.
func (b *Block) Append(c Command, line int) error {
	cb, ok := c.(*Block)
	if ok {
		if b.inSecond || b.kind == secondBlock {
			if cb.containsSecond() {
				return newError("SecondError", "cannot nest second blocks")
			}
			cb.markInSecond()
		}
	}
	b.body = append(b.body, frame{cmd: c, line: line})
	return nil
}

// markInSecond stamps the block and every block beneath it as sitting
// in a second context. Appending a pre-built subtree marks the whole
// subtree, so later appends anywhere inside it see the context too.
func (b *Block) markInSecond() {
	b.inSecond = true
	for _, f := range b.body {
		if cb, ok := f.cmd.(*Block); ok {
			cb.markInSecond()
		}
	}
}

// containsSecond reports whether the block or any block beneath it is
// a second block.
func (b *Block) containsSecond() bool {
	if b.kind == secondBlock {
		return true
	}
	for _, f := range b.body {
		if cb, ok := f.cmd.(*Block); ok && cb.containsSecond() {
			return true
		}
	}
	return false
}

// lastBlock returns the most recently appended child if it is a block.
func (b *Block) lastBlock() (*Block, bool) {
	if len(b.body) == 0 {
		return nil, false
	}
	cb, ok := b.body[len(b.body)-1].cmd.(*Block)
	return cb, ok
}

// markElse upgrades the most recently appended child, which must be a
// plain if block, to an if-else block. Children appended afterwards
// form the alternative branch. It reports whether the upgrade applied.
func (b *Block) markElse() bool {
	last, ok := b.lastBlock()
	if !ok || last.kind != ifBlock {
		return false
	}
	last.kind = ifElseBlock
	last.elseAt = len(last.body)
	return true
}

// Run executes the block against the active stack.
func (b *Block) Run(vm *VM, s *Stack) error {
	switch b.kind {
	case ifBlock:
		c, err := s.PopBool()
		if err != nil {
			return err
		}
		if !c {
			return nil
		}
		return b.runBody(vm, s, b.body)
	case ifElseBlock:
		c, err := s.PopBool()
		if err != nil {
			return err
		}
		if c {
			return b.runBody(vm, s, b.body[:b.elseAt])
		}
		return b.runBody(vm, s, b.body[b.elseAt:])
	case whileBlock:
		for {
			c, err := s.PopBool()
			if err != nil {
				return err
			}
			if !c {
				return nil
			}
			if err := b.runBody(vm, s, b.body); err != nil {
				return err
			}
		}
	case secondBlock:
		return b.runBody(vm, vm.Secondary, b.body)
	}
	return b.runBody(vm, s, b.body)
}

func (b *Block) runBody(vm *VM, s *Stack, body []frame) error {
	for _, f := range body {
		if err := f.cmd.Run(vm, s); err != nil {
			return withLine(err, f.line)
		}
	}
	return nil
}
