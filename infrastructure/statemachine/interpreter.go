package statemachine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Interpreter wraps the statekit interpreter with turn-specific
// functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the turn state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the router node.
func (i *Interpreter) Start() {
	i.interp.Start()
	i.ctx.Current = Node(i.interp.State().Value)
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Node returns the current node.
func (i *Interpreter) Node() Node {
	return Node(i.interp.State().Value)
}

// Transition attempts to move the turn to the target node.
func (i *Interpreter) Transition(to Node) error {
	if !CanTransition(i.ctx.Current, to) {
		return fmt.Errorf("transition from %s to %s not allowed", i.ctx.Current, to)
	}

	i.interp.Send(statekit.Event{
		Type:    EventForTransition(to),
		Payload: TransitionPayload{To: to},
	})

	i.ctx.Current = Node(i.interp.State().Value)
	if i.ctx.Current != to {
		return fmt.Errorf("machine refused transition to %s, at %s", to, i.ctx.Current)
	}
	return nil
}

// IsTerminal returns true if the turn has reached done.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
