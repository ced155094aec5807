package node

import (
	"fmt"

	contractx "github.com/otoasist/otoasist/agent/contract"
	routerx "github.com/otoasist/otoasist/agent/router"
)

func RouteIntent(in *GraphState, r *routerx.Router) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Decision = r.Route(in.Session.DialogueActive(), in.Text)
	return in, nil
}
