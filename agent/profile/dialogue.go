// Package profile implements the multi-turn profile-creation dialogue:
// name, contact, make, model and year are collected across successive
// turns, committing the customer at the contact step and the vehicle at
// the year step.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	extractx "github.com/otoasist/otoasist/agent/extract"
	garagex "github.com/otoasist/otoasist/agent/garage"
	statex "github.com/otoasist/otoasist/agent/state"
)

const (
	msgAskName    = "Yeni profil oluşturmak için adınızı ve soyadınızı alabilir miyim?"
	msgAskContact = "Teşekkürler! Telefon numaranızı veya e-posta adresinizi alabilir miyim?"
	msgAskMake    = "Harika! Şimdi aracınızın bilgilerini alalım. Lütfen aracınızın markasını söyler misiniz?"
	msgAskModel   = "Aracınızın modelini alabilir miyim?"
	msgAskYear    = "Son olarak aracınızın üretim yılını söyler misiniz?"
	msgYearRetry  = "Üzgünüm, yılı anlayamadım. Lütfen yyyy formatında tekrar söyler misiniz?"
	msgCompleted  = "Profil başarıyla oluşturuldu! Size nasıl yardımcı olabilirim?"

	msgDuplicateVehicle = "Bu araç zaten sistemde kayıtlı görünüyor. VIN numaranızı paylaşırsanız mevcut kaydınızı açabilirim."
)

type Dialogue struct {
	store *garagex.Store
	log   zerolog.Logger
}

func New(store *garagex.Store, log zerolog.Logger) *Dialogue {
	return &Dialogue{
		store: store,
		log:   log,
	}
}

// Next consumes one non-empty utterance and advances the dialogue. The
// triggering utterance is not consumed as data: the first call only
// moves the session to the name stage and prompts. Every step accepts
// any non-empty text unconditionally except the year step, which
// reprompts in place until a 4-digit year is found. Storage failures
// propagate as errors; the turn's reply is lost, not the session.
func (d *Dialogue) Next(ctx context.Context, sess *statex.Session, text string) (string, error) {
	switch sess.Stage {
	case statex.StageIdle:
		sess.Stage = statex.StageAwaitingName
		return msgAskName, nil

	case statex.StageAwaitingName:
		sess.Draft.Name = text
		sess.Stage = statex.StageAwaitingContact
		return msgAskContact, nil

	case statex.StageAwaitingContact:
		return d.commitCustomer(ctx, sess, text)

	case statex.StageAwaitingMake:
		sess.Draft.Make = text
		sess.Stage = statex.StageAwaitingModel
		return msgAskModel, nil

	case statex.StageAwaitingModel:
		sess.Draft.Model = text
		sess.Stage = statex.StageAwaitingYear
		return msgAskYear, nil

	case statex.StageAwaitingYear:
		return d.commitVehicle(ctx, sess, text)

	default:
		return "", fmt.Errorf("%w: %q", statex.ErrInvalidStage, sess.Stage)
	}
}

// commitCustomer extracts whichever contact fields are present (either,
// both, or neither; absence is not a failure) and creates the customer.
func (d *Dialogue) commitCustomer(ctx context.Context, sess *statex.Session, text string) (string, error) {
	email, _ := extractx.Email(text)
	phone, _ := extractx.Phone(text)

	customerID, err := d.store.CreateCustomer(ctx, sess.Draft.Name, phone, email)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}

	sess.Draft.Phone = phone
	sess.Draft.Email = email
	sess.Draft.CustomerID = customerID
	sess.Stage = statex.StageAwaitingMake
	return msgAskMake, nil
}

// commitVehicle parses the model year, derives the placeholder VIN and
// creates the vehicle. A duplicate placeholder VIN means a vehicle of
// the same year was already registered this way; the dialogue reports
// it and resets so the caller can fall back to a VIN lookup. The
// customer created at the contact step is kept.
func (d *Dialogue) commitVehicle(ctx context.Context, sess *statex.Session, text string) (string, error) {
	year, ok := extractx.Year(text)
	if !ok {
		// Retry in place: the stage does not advance.
		return msgYearRetry, nil
	}

	vin := extractx.PlaceholderVIN(year)
	vehicleID, err := d.store.CreateVehicle(ctx, vin, sess.Draft.Make, sess.Draft.Model, year, sess.Draft.CustomerID)
	if errors.Is(err, garagex.ErrDuplicateVIN) {
		d.log.Warn().
			Str("session_id", sess.SessionID).
			Str("vin", vin).
			Int64("customer_id", sess.Draft.CustomerID).
			Msg("placeholder vin collision during profile completion")
		sess.ResetDialogue()
		return msgDuplicateVehicle, nil
	}
	if err != nil {
		return "", fmt.Errorf("create vehicle: %w", err)
	}

	sess.SetCurrent(
		&statex.CustomerRef{ID: sess.Draft.CustomerID, Name: sess.Draft.Name},
		&statex.VehicleRef{
			ID:    vehicleID,
			VIN:   vin,
			Make:  sess.Draft.Make,
			Model: sess.Draft.Model,
			Year:  year,
		},
	)
	sess.ResetDialogue()
	return msgCompleted, nil
}
