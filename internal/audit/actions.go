package audit

import "sort"

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionAppointmentDeleted       = "appointment_deleted"
	ActionIllegalTransition        = "appointment_illegal_transition"
	ActionBookingRejected          = "booking_rejected"

	ActionCustomerCreated = "customer_created"

	ActionHangarRegistered      = "hangar_registered"
	ActionHangarSettingsUpdated = "hangar_settings_updated"
	ActionOperatingRulesUpdated = "operating_rules_updated"
	ActionDateBlocked           = "date_blocked"
	ActionDateUnblocked         = "date_unblocked"
	ActionServiceCreated        = "service_created"
	ActionServiceUpdated        = "service_updated"

	ActionLedgerEntryCreated = "ledger_entry_created"
	ActionLedgerEntryDeleted = "ledger_entry_deleted"
)

// Grupos usados pelo filtro da trilha no console.
var groups = map[string][]string{
	"agenda": {
		ActionAppointmentCreated,
		ActionAppointmentStatusChanged,
		ActionAppointmentDeleted,
	},
	"rejections": {
		ActionBookingRejected,
		ActionIllegalTransition,
	},
	"crm": {
		ActionCustomerCreated,
	},
	"settings": {
		ActionHangarRegistered,
		ActionHangarSettingsUpdated,
		ActionOperatingRulesUpdated,
		ActionDateBlocked,
		ActionDateUnblocked,
		ActionServiceCreated,
		ActionServiceUpdated,
	},
	"finance": {
		ActionLedgerEntryCreated,
		ActionLedgerEntryDeleted,
	},
}

var known = func() map[string]bool {
	out := map[string]bool{}
	for _, actions := range groups {
		for _, a := range actions {
			out[a] = true
		}
	}
	return out
}()

func IsKnownAction(action string) bool {
	return known[action]
}

// GroupActions devolve uma cópia das ações do grupo.
func GroupActions(group string) ([]string, bool) {
	actions, ok := groups[group]
	if !ok {
		return nil, false
	}
	return append([]string(nil), actions...), true
}

func Groups() []string {
	out := make([]string, 0, len(groups))
	for g := range groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
