package appointment

// Códigos de negócio devolvidos via httperr.BusinessError.
const (
	CodeDateBlocked        = "date_blocked"
	CodeServiceUnavailable = "service_unavailable"
	CodeIllegalTransition  = "illegal_transition"
	CodeIdentityConflict   = "identity_conflict"
	CodePersistenceFailure = "persistence_failure"

	CodeSlotFull              = "slot_full"
	CodeSlotBusy              = "slot_busy"
	CodeInvalidSlot           = "invalid_slot"
	CodeSlotInPast            = "slot_in_past"
	CodeInvalidDateOrTime     = "invalid_date_or_time"
	CodeOnlineBookingDisabled = "online_booking_disabled"

	CodeAppointmentNotFound = "appointment_not_found"
	CodeCustomerNotFound    = "customer_not_found"
	CodeVehicleNotFound     = "vehicle_not_found"
	CodeHangarNotFound      = "hangar_not_found"
	CodeDeleteNotConfirmed  = "delete_not_confirmed"

	CodeInvalidPhone          = "invalid_phone"
	CodeInvalidPlate          = "invalid_plate"
	CodeInvalidOperatingRules = "invalid_operating_rules"
)
