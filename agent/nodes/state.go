// Package node contains the per-turn pipeline steps the assistant graph
// is compiled from.
package node

import (
	"strings"
	"time"

	contractx "github.com/otoasist/otoasist/agent/contract"
	statex "github.com/otoasist/otoasist/agent/state"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

// GraphState is threaded through the pipeline: one utterance in, one
// reply out, with the conversation session loaded in between.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session  *statex.Session
	Decision contractx.Decision
	Reply    string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, contractx.ErrEmptySession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, contractx.ErrEmptyUtterance
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
