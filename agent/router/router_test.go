package router

import (
	"testing"

	contractx "github.com/otoasist/otoasist/agent/contract"
	vocabx "github.com/otoasist/otoasist/agent/vocab"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	v, err := vocabx.Load()
	if err != nil {
		t.Fatalf("vocab.Load() error = %v", err)
	}
	return New(v)
}

func TestRouteOrderedRules(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	cases := []struct {
		name string
		text string
		want contractx.Decision
	}{
		{
			name: "profile trigger",
			text: "merhaba, profil oluştur lütfen",
			want: contractx.Decision{Intent: contractx.IntentCreateProfile},
		},
		{
			name: "alternate profile trigger",
			text: "yeni profil istiyorum",
			want: contractx.Decision{Intent: contractx.IntentCreateProfile},
		},
		{
			name: "history trigger",
			text: "servis geçmişi görmek istiyorum",
			want: contractx.Decision{Intent: contractx.IntentServiceHistory},
		},
		{
			name: "service type",
			text: "yağ değişimi için randevu almak istiyorum",
			want: contractx.Decision{Intent: contractx.IntentSchedule, ServiceType: "Yağ Değişimi"},
		},
		{
			name: "department",
			text: "beni satış ile görüştürür müsünüz",
			want: contractx.Decision{Intent: contractx.IntentDepartment, Department: "Satış"},
		},
		{
			name: "fallback is vin lookup",
			text: "1HGCM82633A004352",
			want: contractx.Decision{Intent: contractx.IntentVINLookup},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := r.Route(false, tc.text)
			if got != tc.want {
				t.Fatalf("Route(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestServiceTypeBeatsDepartment(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	// "Servis" is a department name, but the service-type rule runs
	// first, so the utterance schedules an oil change.
	got := r.Route(false, "Yağ Değişimi randevusu için Servis departmanını arıyorum")
	if got.Intent != contractx.IntentSchedule {
		t.Fatalf("intent = %s, want schedule_service", got.Intent)
	}
	if got.ServiceType != "Yağ Değişimi" {
		t.Fatalf("service type = %q, want Yağ Değişimi", got.ServiceType)
	}
}

func TestProfileTriggerPreemptsVIN(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	got := r.Route(false, "profil oluştur aracım 1HGCM82633A004352")
	if got.Intent != contractx.IntentCreateProfile {
		t.Fatalf("intent = %s, want create_profile", got.Intent)
	}
}

func TestActiveDialoguePreemptsKeywords(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	// Mid-dialogue the reply "Toyota" has no trigger phrase but must
	// still go to the dialogue rather than VIN lookup.
	got := r.Route(true, "Toyota")
	if got.Intent != contractx.IntentCreateProfile {
		t.Fatalf("intent = %s, want create_profile", got.Intent)
	}
}

func TestTurkishCaseFolding(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	got := r.Route(false, "YAĞ DEĞİŞİMİ LAZIM")
	if got.Intent != contractx.IntentSchedule || got.ServiceType != "Yağ Değişimi" {
		t.Fatalf("Route(upper) = %+v", got)
	}

	got = r.Route(false, "PROFİL OLUŞTUR")
	if got.Intent != contractx.IntentCreateProfile {
		t.Fatalf("Route(PROFİL OLUŞTUR) = %+v", got)
	}
}
