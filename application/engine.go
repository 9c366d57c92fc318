// Package application provides the orchestration layer of the
// consulting engine: the turn pipeline from classification through
// routing, planning, execution, and synthesis, plus session handling.
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/intent"
	"github.com/merchantlab/consult-go/domain/plan"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/logging"
	"github.com/merchantlab/consult-go/infrastructure/planner"
	"github.com/merchantlab/consult-go/infrastructure/resilience"
	"github.com/merchantlab/consult-go/infrastructure/resolver"
	"github.com/merchantlab/consult-go/infrastructure/statemachine"
	"github.com/merchantlab/consult-go/infrastructure/synthesizer"
)

// Engine orchestrates one conversation turn through the graph:
// router, then planner or direct dispatch, then the executor loop,
// then synthesis or a simple reply.
type Engine struct {
	classifier    intent.Classifier
	registry      capability.Registry
	planner       *planner.Planner
	executor      *resilience.Executor
	synthesizer   *synthesizer.Synthesizer
	responder     *synthesizer.Responder
	profiles      profile.Store
	resolver      *resolver.Resolver
	maxPlanSteps  int
	historyWindow int
}

// EngineConfig contains the collaborators the engine orchestrates.
type EngineConfig struct {
	Classifier  intent.Classifier
	Registry    capability.Registry
	Planner     *planner.Planner
	Executor    *resilience.Executor
	Synthesizer *synthesizer.Synthesizer
	Responder   *synthesizer.Responder
	Profiles    profile.Store

	// Resolver maps masked store names in queries to store profiles.
	// Optional; without it masked names stay unresolved.
	Resolver *resolver.Resolver

	// MaxPlanSteps caps the executor loop per turn (default 5).
	MaxPlanSteps int

	// HistoryWindow is how many recent messages capabilities that
	// request history receive (default 10).
	HistoryWindow int
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if config.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if config.Planner == nil {
		return nil, errors.New("planner is required")
	}
	if config.Synthesizer == nil {
		return nil, errors.New("synthesizer is required")
	}
	if config.Responder == nil {
		return nil, errors.New("responder is required")
	}
	if config.Profiles == nil {
		return nil, errors.New("profile store is required")
	}

	e := &Engine{
		classifier:    config.Classifier,
		registry:      config.Registry,
		planner:       config.Planner,
		executor:      config.Executor,
		synthesizer:   config.Synthesizer,
		responder:     config.Responder,
		profiles:      config.Profiles,
		resolver:      config.Resolver,
		maxPlanSteps:  config.MaxPlanSteps,
		historyWindow: config.HistoryWindow,
	}
	if e.executor == nil {
		e.executor = resilience.NewDefaultExecutor()
	}
	if e.maxPlanSteps <= 0 {
		e.maxPlanSteps = 5
	}
	if e.historyWindow <= 0 {
		e.historyWindow = 10
	}
	return e, nil
}

// HandleTurn runs one user question through the turn graph and
// returns the final answer. The state carries conversation history
// and the resolved profile across turns.
func (e *Engine) HandleTurn(ctx context.Context, state *conversation.State, input string) (string, error) {
	log := logging.Get()

	state.BeginTurn(input)
	e.resolveProfile(ctx, state, input)

	classified, err := e.classifier.Classify(ctx, input)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	route := intent.RouteFor(classified)

	logging.NewEvent(log.Info()).
		Add(logging.StoreID(state.StoreID())).
		Add(logging.IntentField(classified)).
		Add(logging.Node(route.Node)).
		Msg("turn routed")

	machine, err := statemachine.NewTurnMachine()
	if err != nil {
		return "", fmt.Errorf("build turn machine: %w", err)
	}
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(state))
	interp.Start()
	defer interp.Stop()

	state.AllowedTools = route.AllowedTools

	switch route.Node {
	case intent.NodePlanner:
		if err := interp.Transition(statemachine.NodePlanner); err != nil {
			return "", err
		}
		steps, err := e.planner.Plan(ctx, planner.Request{
			Query:        input,
			Profile:      state.CurrentProfile,
			AllowedTools: route.AllowedTools,
		})
		if err != nil {
			// A failed plan degrades to a turn-level apology rather
			// than aborting the session.
			logging.NewEvent(log.Warn()).
				Add(logging.ErrorField(err)).
				Msg("planning failed, apologizing")
			return e.finishWith(interp, state, planFailureApology)
		}
		state.SetPlan(steps)
		return e.execute(ctx, interp, state)

	case intent.NodeExecutor:
		state.SetPlan([]plan.Step{{ToolName: route.Capability, Query: input}})
		return e.execute(ctx, interp, state)

	case intent.NodeSynthesizer:
		// Profile questions answer from the bound profile alone.
		return e.synthesize(ctx, interp, state)

	default:
		return e.respond(interp, state, classified)
	}
}

const planFailureApology = "죄송해요, 지금은 답변 계획을 세우지 못했어요. 질문을 조금 바꿔서 다시 물어봐 주세요."

// resolveProfile binds the session to a store. A masked name in the
// query rebinds it; otherwise an existing binding is kept.
func (e *Engine) resolveProfile(ctx context.Context, state *conversation.State, input string) {
	if e.resolver == nil || resolver.MaskedName(input) == "" {
		return
	}
	log := logging.Get()

	entry, err := e.resolver.Resolve(input)
	if err != nil {
		logging.NewEvent(log.Warn()).
			Add(logging.ErrorField(err)).
			Msg("masked name did not resolve")
		return
	}
	p, err := e.profiles.Get(ctx, entry.ID)
	if err != nil {
		logging.NewEvent(log.Warn()).
			Add(logging.StoreID(entry.ID)).
			Add(logging.ErrorField(err)).
			Msg("resolved store has no profile")
		return
	}
	state.CurrentProfile = p
}

// execute drains the plan through the capability registry. Each
// iteration pops the front step, injects context per the capability's
// metadata, and records the result. A final output ends the turn
// immediately; otherwise the accumulated evidence goes to synthesis.
func (e *Engine) execute(ctx context.Context, interp *statemachine.Interpreter, state *conversation.State) (string, error) {
	if err := interp.Transition(statemachine.NodeExecutor); err != nil {
		return "", err
	}
	log := logging.Get()

	for i := 0; i < e.maxPlanSteps; i++ {
		step, ok := state.PopStep()
		if !ok {
			break
		}

		out, err := e.runStep(ctx, state, step)
		if err != nil {
			return "", err
		}
		state.RecordStep(step, out.Content)
		state.AddSources(out.Sources)
		if out.Profile != nil {
			// A mutating step hands back the written profile; the
			// session copy must not go stale.
			state.CurrentProfile = out.Profile
		}

		logging.NewEvent(log.Info()).
			Add(logging.CapabilityName(step.ToolName)).
			Add(logging.PlanSize(len(state.Plan))).
			Add(logging.Turn(i + 1)).
			Msg("step executed")

		if out.IsFinalAnswer {
			state.Finalize(out.Content)
			if err := interp.Transition(statemachine.NodeDone); err != nil {
				return "", err
			}
			return out.Content, nil
		}
	}
	if len(state.Plan) > 0 {
		logging.NewEvent(log.Warn()).
			Add(logging.PlanSize(len(state.Plan))).
			Msg("step budget exhausted with plan remaining")
	}

	return e.synthesize(ctx, interp, state)
}

// runStep executes one plan step. Failures surface as error payload
// outputs so later steps and the synthesizer still run; a returned
// error is reserved for context cancellation.
func (e *Engine) runStep(ctx context.Context, state *conversation.State, step plan.Step) (capability.Output, error) {
	c, err := e.registry.Get(ctx, step.ToolName)
	if err != nil {
		return capability.NewErrorPayload(step.ToolName, step.Query, err).Output(), nil
	}

	out, err := e.executor.Execute(ctx, c, e.buildInput(state, step, c.Metadata()))
	if err != nil {
		if ctx.Err() != nil {
			return capability.Output{}, ctx.Err()
		}
		return capability.NewErrorPayload(step.ToolName, step.Query, err).Output(), nil
	}
	return out, nil
}

// buildInput assembles the capability input. Only fields the
// capability's metadata asks for are injected; everything else stays
// zero regardless of what the session holds.
func (e *Engine) buildInput(state *conversation.State, step plan.Step, meta capability.Metadata) capability.Input {
	input := capability.Input{Query: step.Query}
	if meta.NeedsUserQuery {
		if q := state.UserQuery(); q != "" {
			input.Query = q
		}
	}
	if meta.NeedsStoreID {
		input.StoreID = state.StoreID()
	}
	if meta.NeedsProfile {
		input.Profile = state.CurrentProfile
	}
	if meta.NeedsHistory {
		messages := state.Messages
		if len(messages) > e.historyWindow {
			messages = messages[len(messages)-e.historyWindow:]
		}
		input.History = messages
	}
	return input
}

func (e *Engine) synthesize(ctx context.Context, interp *statemachine.Interpreter, state *conversation.State) (string, error) {
	if err := interp.Transition(statemachine.NodeSynthesizer); err != nil {
		return "", err
	}
	answer, err := e.synthesizer.Synthesize(ctx, state)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	state.Finalize(answer)
	if err := interp.Transition(statemachine.NodeDone); err != nil {
		return "", err
	}
	return answer, nil
}

func (e *Engine) respond(interp *statemachine.Interpreter, state *conversation.State, classified intent.Intent) (string, error) {
	return e.finishWith(interp, state, e.responder.Respond(state, classified))
}

// finishWith delivers a fixed answer through the simple responder node.
func (e *Engine) finishWith(interp *statemachine.Interpreter, state *conversation.State, answer string) (string, error) {
	if err := interp.Transition(statemachine.NodeSimpleResponder); err != nil {
		return "", err
	}
	state.Finalize(answer)
	if err := interp.Transition(statemachine.NodeDone); err != nil {
		return "", err
	}
	return answer, nil
}
