package assistant

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	node "github.com/otoasist/otoasist/agent/nodes"
)

func (a *Assistant) compileHandleUtteranceGraph(
	ctx context.Context,
) (compose.Runnable[node.GraphInput, node.GraphOutput], error) {
	graph := compose.NewGraph[node.GraphInput, node.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in node.GraphInput) (*node.GraphState, error) {
			return node.ValidateRequest(in, a.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_session",
		compose.InvokableLambda(func(ctx context.Context, in *node.GraphState) (*node.GraphState, error) {
			return node.LoadOrCreateSession(ctx, in, a.sessions)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_session: %w", err)
	}

	if err := graph.AddLambdaNode("route_intent",
		compose.InvokableLambda(func(ctx context.Context, in *node.GraphState) (*node.GraphState, error) {
			return node.RouteIntent(in, a.router)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route_intent: %w", err)
	}

	if err := graph.AddLambdaNode("run_action",
		compose.InvokableLambda(func(ctx context.Context, in *node.GraphState) (*node.GraphState, error) {
			return node.RunAction(ctx, in, a.dialogue, a.garage, a.vocab)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_action: %w", err)
	}

	if err := graph.AddLambdaNode("save_session",
		compose.InvokableLambda(func(ctx context.Context, in *node.GraphState) (*node.GraphState, error) {
			return node.SaveSession(ctx, in, a.sessions)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_session: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *node.GraphState) (node.GraphOutput, error) {
			return node.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_session"},
		{"load_or_create_session", "route_intent"},
		{"route_intent", "run_action"},
		{"run_action", "save_session"},
		{"save_session", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("assistant.handle_utterance"))
	if err != nil {
		return nil, fmt.Errorf("compile assistant graph: %w", err)
	}
	return runner, nil
}
