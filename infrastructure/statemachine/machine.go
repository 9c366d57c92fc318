// Package statemachine provides the statekit statechart for the
// conversation turn: router, planner, executor, synthesizer, and the
// simple responder, ending in done.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/intent"
)

// Node names the graph nodes. They match the router's route targets.
type Node string

const (
	NodeRouter          Node = "router"
	NodePlanner         Node = Node(intent.NodePlanner)
	NodeExecutor        Node = Node(intent.NodeExecutor)
	NodeSynthesizer     Node = Node(intent.NodeSynthesizer)
	NodeSimpleResponder Node = Node(intent.NodeSimpleResponder)
	NodeDone            Node = Node(intent.NodeDone)
)

// Context carries turn state through the state machine.
type Context struct {
	State   *conversation.State
	Current Node
}

// NewContext creates a machine context for a turn.
func NewContext(state *conversation.State) *Context {
	return &Context{State: state, Current: NodeRouter}
}

const (
	stateRouter          statekit.StateID = statekit.StateID(NodeRouter)
	statePlanner         statekit.StateID = statekit.StateID(NodePlanner)
	stateExecutor        statekit.StateID = statekit.StateID(NodeExecutor)
	stateSynthesizer     statekit.StateID = statekit.StateID(NodeSynthesizer)
	stateSimpleResponder statekit.StateID = statekit.StateID(NodeSimpleResponder)
	stateDone            statekit.StateID = statekit.StateID(NodeDone)
)

// allowedTransitions is the closed turn graph. Every turn ends in done.
var allowedTransitions = map[Node][]Node{
	NodeRouter:          {NodePlanner, NodeExecutor, NodeSynthesizer, NodeSimpleResponder},
	NodePlanner:         {NodeExecutor, NodeSimpleResponder},
	NodeExecutor:        {NodeSynthesizer, NodeDone},
	NodeSynthesizer:     {NodeDone},
	NodeSimpleResponder: {NodeDone},
}

// CanTransition reports whether the graph allows moving from one node
// to another.
func CanTransition(from, to Node) bool {
	for _, n := range allowedTransitions[from] {
		if n == to {
			return true
		}
	}
	return false
}

// NewTurnMachine creates the canonical turn statechart.
func NewTurnMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("turn").
		WithInitial(stateRouter).
		WithContext(&Context{}).
		WithAction("recordNode", recordNode).
		WithGuard("canTransition", guardCanTransition).
		State(stateRouter).
			On("PLAN").Target(statePlanner).Guard("canTransition").Do("recordNode").
			On("EXECUTE").Target(stateExecutor).Guard("canTransition").Do("recordNode").
			On("SYNTHESIZE").Target(stateSynthesizer).Guard("canTransition").Do("recordNode").
			On("RESPOND").Target(stateSimpleResponder).Guard("canTransition").Do("recordNode").
			Done().
		State(statePlanner).
			On("EXECUTE").Target(stateExecutor).Guard("canTransition").Do("recordNode").
			On("RESPOND").Target(stateSimpleResponder).Guard("canTransition").Do("recordNode").
			Done().
		State(stateExecutor).
			On("SYNTHESIZE").Target(stateSynthesizer).Guard("canTransition").Do("recordNode").
			On("DONE").Target(stateDone).Guard("canTransition").Do("recordNode").
			Done().
		State(stateSynthesizer).
			On("DONE").Target(stateDone).Guard("canTransition").Do("recordNode").
			Done().
		State(stateSimpleResponder).
			On("DONE").Target(stateDone).Guard("canTransition").Do("recordNode").
			Done().
		State(stateDone).
			Final().
			Done().
		Build()
}

// EventForTransition returns the event type that moves the machine to
// the target node.
func EventForTransition(to Node) statekit.EventType {
	switch to {
	case NodePlanner:
		return "PLAN"
	case NodeExecutor:
		return "EXECUTE"
	case NodeSynthesizer:
		return "SYNTHESIZE"
	case NodeSimpleResponder:
		return "RESPOND"
	case NodeDone:
		return "DONE"
	default:
		return statekit.EventType(to)
	}
}

// TransitionPayload carries the target node with a transition event.
type TransitionPayload struct {
	To Node
}

func recordNode(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	c := *ctx
	if payload, ok := event.Payload.(TransitionPayload); ok {
		c.Current = payload.To
		if c.State != nil {
			c.State.NextNode = string(payload.To)
		}
	}
}

func guardCanTransition(ctx *Context, event statekit.Event) bool {
	if ctx == nil {
		return false
	}
	payload, ok := event.Payload.(TransitionPayload)
	if !ok {
		return false
	}
	return CanTransition(ctx.Current, payload.To)
}
