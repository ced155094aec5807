package state

import (
	"errors"
	"fmt"
	"time"
)

// Stage is the current step of the profile-creation dialogue. The zero
// value means no dialogue is in progress.
type Stage string

const (
	StageIdle            Stage = ""
	StageAwaitingName    Stage = "awaiting_name"
	StageAwaitingContact Stage = "awaiting_contact"
	StageAwaitingMake    Stage = "awaiting_make"
	StageAwaitingModel   Stage = "awaiting_model"
	StageAwaitingYear    Stage = "awaiting_year"
)

// Draft carries the partial profile collected so far. CustomerID is set
// once the contact step has committed the customer to the store; the
// vehicle fields keep accumulating until the year step commits them.
type Draft struct {
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Make       string `json:"make,omitempty"`
	Model      string `json:"model,omitempty"`
	CustomerID int64  `json:"customer_id,omitempty"`
}

// CustomerRef and VehicleRef are conversation-scoped snapshots of the
// resolved records. The store remains the source of truth; these exist
// so replies can name the customer and car without re-querying.
type CustomerRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type VehicleRef struct {
	ID    int64  `json:"id"`
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// Session is the per-conversation state: the dialogue stage, the draft
// profile, and the currently resolved customer/vehicle pair. One Session
// belongs to exactly one conversation and is never shared.
type Session struct {
	SessionID string `json:"session_id"`

	Stage    Stage        `json:"stage,omitempty"`
	Draft    Draft        `json:"draft,omitempty"`
	Customer *CustomerRef `json:"customer,omitempty"`
	Vehicle  *VehicleRef  `json:"vehicle,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

var ErrInvalidStage = errors.New("invalid dialogue stage")

func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		UpdatedAt: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// DialogueActive reports whether a profile-creation dialogue is in
// progress, in which case every utterance belongs to it regardless of
// keywords.
func (s *Session) DialogueActive() bool {
	return s != nil && s.Stage != StageIdle
}

// ResetDialogue clears the dialogue stage and draft. The resolved
// customer/vehicle references are kept: completing or abandoning the
// dialogue does not forget a vehicle resolved earlier in the session.
func (s *Session) ResetDialogue() {
	s.Stage = StageIdle
	s.Draft = Draft{}
}

// SetCurrent records the resolved pair after a successful lookup or a
// committed profile.
func (s *Session) SetCurrent(c *CustomerRef, v *VehicleRef) {
	s.Customer = c
	s.Vehicle = v
}

func (s *Session) Validate() error {
	switch s.Stage {
	case StageIdle, StageAwaitingName, StageAwaitingContact,
		StageAwaitingMake, StageAwaitingModel, StageAwaitingYear:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStage, s.Stage)
	}

	// Name is collected before contact, customer committed before the
	// vehicle steps.
	switch s.Stage {
	case StageAwaitingContact:
		if s.Draft.Name == "" {
			return fmt.Errorf("%w: contact stage without a name", ErrInvalidStage)
		}
	case StageAwaitingMake, StageAwaitingModel, StageAwaitingYear:
		if s.Draft.CustomerID <= 0 {
			return fmt.Errorf("%w: vehicle stage without a committed customer", ErrInvalidStage)
		}
	}
	return nil
}
