package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	"github.com/BruksfildServices01/hangar-scheduler/internal/whatsapp"
)

type TransitionInput struct {
	HangarID      uint
	UserID        *uint
	AppointmentID uint
	To            domain.Status
	Reason        string
}

type TransitionResult struct {
	Appointment  *models.Appointment `json:"appointment"`
	Confirmation *whatsapp.Offer     `json:"confirmation,omitempty"`
	Loyalty      *domain.Loyalty     `json:"loyalty,omitempty"`
	Day          DaySnapshot         `json:"day"`
}

type TransitionStatus struct {
	repo  domain.Repository
	audit auditor
	clock timezone.Clock
}

func NewTransitionStatus(
	repo domain.Repository,
	audit auditor,
	clock timezone.Clock,
) *TransitionStatus {
	return &TransitionStatus{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	in TransitionInput,
) (*TransitionResult, error) {

	hangar, err := loadHangar(ctx, uc.repo, in.HangarID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.HangarID, in.AppointmentID)
	if err != nil {
		return nil, notFoundOr(err, domain.CodeAppointmentNotFound)
	}

	// --------------------------------------------------
	// Máquina de estados
	// --------------------------------------------------
	now := timezone.NowIn(uc.clock, hangar.Timezone)

	from, err := domain.Transition(ap, in.To, in.Reason, now)
	if err != nil {
		uc.refuse(ctx, in, from)
		return nil, err
	}

	// compare-and-set: outro operador pode ter mudado o status antes
	applied, err := uc.repo.UpdateAppointmentStatus(ctx, ap, from)
	if err != nil {
		return nil, persistence(err)
	}
	if !applied {
		current := from
		if fresh, err := uc.repo.GetAppointment(ctx, in.HangarID, in.AppointmentID); err == nil {
			current = domain.Status(fresh.Status)
		}
		uc.refuse(ctx, in, current)
		return nil, httperr.ErrBusinessDetail(domain.CodeIllegalTransition, string(current)+"->"+string(in.To))
	}

	uc.audit.Dispatch(audit.Event{
		HangarID: in.HangarID,
		UserID:   in.UserID,
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from":   from,
			"to":     in.To,
			"reason": ap.CancellationReason,
		},
	})

	result := &TransitionResult{Appointment: ap}

	// --------------------------------------------------
	// Efeitos colaterais
	// --------------------------------------------------
	switch in.To {
	case domain.StatusConfirmed:
		offer := whatsapp.NewOffer(ap.Customer.Phone, whatsapp.Confirmation{
			HangarName:   hangar.Name,
			CustomerName: ap.Customer.Name,
			Date:         ap.Date,
			Time:         ap.Time,
			VehicleModel: ap.Vehicle.Model,
			VehiclePlate: ap.Vehicle.Plate,
			ServiceName:  ap.ServiceType,
		})
		result.Confirmation = &offer

	case domain.StatusFinished:
		if hangar.LoyaltyProgramEnabled {
			finished, err := uc.repo.ListFinishedForCustomer(ctx, in.HangarID, ap.CustomerID)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Uint("customer_id", ap.CustomerID).Msg("loyalty recount failed")
				break
			}
			loyalty := domain.LoyaltyFor(len(finished))
			result.Loyalty = &loyalty
		}
	}

	snapshot, err := refreshDay(ctx, uc.repo, hangar, ap.Date)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("appointment_id", ap.ID).Msg("refresh after transition failed")
	}
	result.Day = snapshot

	return result, nil
}

func (uc *TransitionStatus) refuse(ctx context.Context, in TransitionInput, current domain.Status) {
	log.Ctx(ctx).Warn().
		Uint("hangar_id", in.HangarID).
		Uint("appointment_id", in.AppointmentID).
		Str("from", string(current)).
		Str("to", string(in.To)).
		Msg("illegal status transition refused")

	uc.audit.Dispatch(audit.Event{
		HangarID: in.HangarID,
		UserID:   in.UserID,
		Action:   audit.ActionIllegalTransition,
		Entity:   "appointment",
		EntityID: &in.AppointmentID,
		Metadata: map[string]any{
			"from": current,
			"to":   in.To,
		},
	})
}
