// Package assistant wires the router, profile dialogue and stores into
// the per-turn pipeline: one plain-text utterance in, one plain-text
// reply out. Transport, audio and model concerns live outside.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"

	garagex "github.com/otoasist/otoasist/agent/garage"
	node "github.com/otoasist/otoasist/agent/nodes"
	profilex "github.com/otoasist/otoasist/agent/profile"
	routerx "github.com/otoasist/otoasist/agent/router"
	statex "github.com/otoasist/otoasist/agent/state"
	vocabx "github.com/otoasist/otoasist/agent/vocab"
)

type Assistant struct {
	sessions statex.Store
	garage   *garagex.Store
	dialogue *profilex.Dialogue
	router   *routerx.Router
	vocab    *vocabx.Vocabulary
	log      zerolog.Logger

	graphRunner compose.Runnable[node.GraphInput, node.GraphOutput]

	now func() time.Time
}

func New(
	sessions statex.Store,
	garage *garagex.Store,
	voc *vocabx.Vocabulary,
	log zerolog.Logger,
) (*Assistant, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if garage == nil {
		return nil, errors.New("garage store is required")
	}
	if voc == nil {
		var err error
		voc, err = vocabx.Load()
		if err != nil {
			return nil, err
		}
	}

	a := &Assistant{
		sessions: sessions,
		garage:   garage,
		dialogue: profilex.New(garage, log),
		router:   routerx.New(voc),
		vocab:    voc,
		log:      log,
		now:      time.Now,
	}

	graphRunner, err := a.compileHandleUtteranceGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// HandleUtterance processes one conversation turn. NotFound-class
// conditions come back as prompting replies; storage and session-store
// failures come back as the turn's error.
func (a *Assistant) HandleUtterance(ctx context.Context, sessionID string, text string) (string, error) {
	l := a.log.With().Str("session_id", sessionID).Logger()

	out, err := a.graphRunner.Invoke(ctx, node.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		l.Error().Err(err).Msg("turn failed")
		return "", err
	}

	l.Debug().Int("reply_len", len(out.Reply)).Msg("turn handled")
	return out.Reply, nil
}
