package contract

// Intent is the action class the router assigns to one utterance.
type Intent string

const (
	IntentCreateProfile  Intent = "create_profile"
	IntentServiceHistory Intent = "service_history"
	IntentSchedule       Intent = "schedule_service"
	IntentDepartment     Intent = "department_routing"
	IntentVINLookup      Intent = "vin_lookup"
)

// Decision is the router's verdict for one utterance. ServiceType is set
// only for IntentSchedule, Department only for IntentDepartment.
type Decision struct {
	Intent      Intent
	ServiceType string
	Department  string
}
