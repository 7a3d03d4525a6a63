package dashboard

import (
	"time"

	"github.com/newthinker/evaldash/internal/core"
)

// Phase is the visible UI state. Exactly one is active at a time.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseContent
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseContent:
		return "content"
	default:
		return "unknown"
	}
}

// MarshalText lets Phase serialize as its name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is a snapshot of the controller's UI state.
type State struct {
	Phase       Phase              `json:"phase"`
	Message     string             `json:"message,omitempty"`
	Summary     *core.ModelSummary `json:"summary,omitempty"`
	Predictions []core.Prediction  `json:"predictions,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// applyVisibility toggles the three state containers so only p's is shown.
func applyVisibility(v View, p Phase) {
	v.SetVisibility(IDLoading, p == PhaseLoading)
	v.SetVisibility(IDError, p == PhaseError)
	v.SetVisibility(IDContent, p == PhaseContent)
}
