// Package router maps one utterance to an action by ordered substring
// tests. The precedence is a fixed policy: an active or newly triggered
// profile dialogue always pre-empts everything else, including a VIN
// that appears in the same utterance; service-type matches beat
// department matches; anything unmatched is treated as a VIN lookup.
package router

import (
	"strings"
	"unicode"

	contractx "github.com/otoasist/otoasist/agent/contract"
	vocabx "github.com/otoasist/otoasist/agent/vocab"
)

var profileTriggers = []string{"profil oluştur", "yeni profil"}

var historyTriggers = []string{"servis geçmişi", "geçmiş servisler"}

type entry struct {
	folded   string
	original string
}

type Router struct {
	serviceTypes []entry
	departments  []entry
}

func New(v *vocabx.Vocabulary) *Router {
	r := &Router{
		serviceTypes: make([]entry, 0, len(v.ServiceTypes)),
		departments:  make([]entry, 0, len(v.Departments)),
	}
	for _, st := range v.ServiceTypes {
		r.serviceTypes = append(r.serviceTypes, entry{folded: fold(st), original: st})
	}
	for _, d := range v.Departments {
		r.departments = append(r.departments, entry{folded: fold(d.Name), original: d.Name})
	}
	return r
}

// Route decides the action for one utterance. dialogueActive short-
// circuits the keyword rules: mid-dialogue replies such as a bare name
// or make carry no trigger phrase yet belong to the dialogue.
func (r *Router) Route(dialogueActive bool, text string) contractx.Decision {
	if dialogueActive {
		return contractx.Decision{Intent: contractx.IntentCreateProfile}
	}

	folded := fold(text)

	for _, trigger := range profileTriggers {
		if strings.Contains(folded, trigger) {
			return contractx.Decision{Intent: contractx.IntentCreateProfile}
		}
	}

	for _, trigger := range historyTriggers {
		if strings.Contains(folded, trigger) {
			return contractx.Decision{Intent: contractx.IntentServiceHistory}
		}
	}

	for _, st := range r.serviceTypes {
		if strings.Contains(folded, st.folded) {
			return contractx.Decision{
				Intent:      contractx.IntentSchedule,
				ServiceType: st.original,
			}
		}
	}

	for _, d := range r.departments {
		if strings.Contains(folded, d.folded) {
			return contractx.Decision{
				Intent:     contractx.IntentDepartment,
				Department: d.original,
			}
		}
	}

	return contractx.Decision{Intent: contractx.IntentVINLookup}
}

// fold lowercases with Turkish casing rules, so dotted and dotless I
// fold the way user input is actually typed.
func fold(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}
