package services

import (
	"fmt"
	"net/http"

	"neighbrewhood-backend/internal/models"
)

const apiPrefix = "/api/v1"

// Action describes one legal next operation on an entity: the HTTP method,
// the target URL and, for operations taking a body, its input schema.
type Action struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Schema map[string]string `json:"schema,omitempty"`
}

func makeAction(method, url string) Action {
	return Action{Method: method, URL: url}
}

// claimInputSchema describes the make_claim request body for clients.
var claimInputSchema = map[string]string{
	"brew":        "string",
	"num_bottles": "integer",
}

// SwapActions computes the operations the viewer may perform on a swap.
// It is a pure function of the snapshot and the viewer: the creator gets
// the lifecycle transitions, everyone else gets make_claim.
func SwapActions(swap *models.BrewSwap, viewerID string) map[string]Action {
	base := fmt.Sprintf("%s/swaps/%s", apiPrefix, swap.ID)
	if viewerID == swap.CreatorID {
		return map[string]Action{
			"set_live":     makeAction(http.MethodGet, base+"/set_live"),
			"set_complete": makeAction(http.MethodGet, base+"/set_complete"),
			"set_inactive": makeAction(http.MethodGet, base+"/set_inactive"),
			"get_claims":   makeAction(http.MethodGet, base+"/claims"),
		}
	}
	return map[string]Action{
		"make_claim": {
			Method: http.MethodPost,
			URL:    base + "/claim",
			Schema: claimInputSchema,
		},
		"get_claims": makeAction(http.MethodGet, base+"/claims"),
	}
}

// ClaimActions computes the operations the viewer may perform on a claim.
// The claimant may cancel; anyone else (the swap owner) may accept or
// reject.
func ClaimActions(claim *models.SwapClaim, viewerID string) map[string]Action {
	base := fmt.Sprintf("%s/claims/%s", apiPrefix, claim.ID)
	if viewerID == claim.CreatorID {
		return map[string]Action{
			"cancel": makeAction(http.MethodGet, base+"/cancel"),
		}
	}
	return map[string]Action{
		"accept": makeAction(http.MethodGet, base+"/accept"),
		"reject": makeAction(http.MethodGet, base+"/reject"),
	}
}
