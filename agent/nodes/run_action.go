package node

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/otoasist/otoasist/agent/contract"
	extractx "github.com/otoasist/otoasist/agent/extract"
	garagex "github.com/otoasist/otoasist/agent/garage"
	profilex "github.com/otoasist/otoasist/agent/profile"
	statex "github.com/otoasist/otoasist/agent/state"
	vocabx "github.com/otoasist/otoasist/agent/vocab"
)

const (
	msgVINMissing = "VIN numarası bulunamadı. Lütfen 17 karakterli VIN numaranızı paylaşır mısınız?"
	msgVINUnknown = "Bu VIN numarasına ait kayıt bulamadım. Yeni profil oluşturmak ister misiniz?"

	msgNoVehicle = "Önce araç bilgilerinizi kontrol etmeliyim. VIN numaranızı paylaşır mısınız?"

	msgNoHistory = "Aracınız için henüz servis kaydı bulunmuyor."
)

// RunAction dispatches the routed intent to its handler and records the
// reply on the graph state.
func RunAction(
	ctx context.Context,
	in *GraphState,
	dialogue *profilex.Dialogue,
	store *garagex.Store,
	voc *vocabx.Vocabulary,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	var (
		reply string
		err   error
	)
	switch in.Decision.Intent {
	case contractx.IntentCreateProfile:
		reply, err = dialogue.Next(ctx, in.Session, in.Text)
	case contractx.IntentServiceHistory:
		reply, err = serviceHistory(ctx, in.Session, store)
	case contractx.IntentSchedule:
		reply, err = scheduleService(ctx, in.Session, store, in.Decision.ServiceType, in.Text)
	case contractx.IntentDepartment:
		reply, err = departmentReply(voc, in.Decision.Department)
	case contractx.IntentVINLookup:
		reply, err = lookupVehicle(ctx, in.Session, store, in.Text)
	default:
		return nil, fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, in.Decision.Intent)
	}
	if err != nil {
		return nil, err
	}

	in.Reply = reply
	return in, nil
}

// lookupVehicle resolves a VIN from the utterance and makes the pair
// current on the session. Both miss cases are prompting replies, not
// errors.
func lookupVehicle(ctx context.Context, sess *statex.Session, store *garagex.Store, text string) (string, error) {
	vin, ok := extractx.VIN(text)
	if !ok {
		return msgVINMissing, nil
	}

	vehicle, customer, err := store.LookupByVIN(ctx, vin)
	if errors.Is(err, garagex.ErrNotFound) {
		return msgVINUnknown, nil
	}
	if err != nil {
		return "", err
	}

	sess.SetCurrent(
		&statex.CustomerRef{ID: customer.ID, Name: customer.Name},
		&statex.VehicleRef{
			ID:    vehicle.ID,
			VIN:   vehicle.VIN,
			Make:  vehicle.Make,
			Model: vehicle.Model,
			Year:  vehicle.Year,
		},
	)
	return fmt.Sprintf("Hoş geldiniz %s! %d %s %s aracınız için nasıl yardımcı olabilirim?",
		customer.Name, vehicle.Year, vehicle.Make, vehicle.Model), nil
}

func serviceHistory(ctx context.Context, sess *statex.Session, store *garagex.Store) (string, error) {
	if sess.Vehicle == nil {
		return msgNoVehicle, nil
	}

	records, err := store.ServiceHistory(ctx, sess.Vehicle.ID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return msgNoHistory, nil
	}

	var b strings.Builder
	b.WriteString("İşte aracınızın servis geçmişi:\n")
	for _, r := range records {
		fmt.Fprintf(&b, "- %s: %s - %s\n", r.ServiceDate.Format("2006-01-02"), r.ServiceType, r.Description)
	}
	return b.String(), nil
}

// scheduleService books the matched service type with the full
// utterance as the description.
func scheduleService(ctx context.Context, sess *statex.Session, store *garagex.Store, serviceType, description string) (string, error) {
	if sess.Vehicle == nil {
		return msgNoVehicle, nil
	}

	if err := store.AddServiceRecord(ctx, sess.Vehicle.ID, serviceType, description); err != nil {
		return "", err
	}
	return fmt.Sprintf("Servis kaydınız oluşturuldu! %s için randevunuz alındı.", serviceType), nil
}

// departmentReply is terminal: it names the department and its
// description without touching the store.
func departmentReply(voc *vocabx.Vocabulary, department string) (string, error) {
	for _, d := range voc.Departments {
		if d.Name == department {
			return fmt.Sprintf("%s departmanına yönlendiriliyorsunuz. %s", d.Name, d.Description), nil
		}
	}
	return "", fmt.Errorf("%w: department %q is not in the vocabulary", contractx.ErrValidation, department)
}
