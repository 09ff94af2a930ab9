package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
)

type DeleteAppointmentInput struct {
	HangarID      uint
	UserID        *uint
	AppointmentID uint

	// Confirmed precisa vir explícito: a exclusão é definitiva.
	Confirmed bool
}

// DeleteAppointment remove o registro independente do status. Não é uma
// transição da máquina de estados.
type DeleteAppointment struct {
	repo  domain.Repository
	audit auditor
}

func NewDeleteAppointment(repo domain.Repository, audit auditor) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	in DeleteAppointmentInput,
) (*DaySnapshot, error) {

	if !in.Confirmed {
		return nil, httperr.ErrBusiness(domain.CodeDeleteNotConfirmed)
	}

	hangar, err := loadHangar(ctx, uc.repo, in.HangarID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.HangarID, in.AppointmentID)
	if err != nil {
		return nil, notFoundOr(err, domain.CodeAppointmentNotFound)
	}

	deleted, err := uc.repo.DeleteAppointment(ctx, in.HangarID, in.AppointmentID)
	if err != nil {
		return nil, persistence(err)
	}
	if !deleted {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		HangarID: in.HangarID,
		UserID:   in.UserID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: &in.AppointmentID,
		Metadata: map[string]any{
			"status":      ap.Status,
			"date":        ap.Date,
			"time":        ap.Time,
			"customer_id": ap.CustomerID,
		},
	})

	snapshot, err := refreshDay(ctx, uc.repo, hangar, ap.Date)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("appointment_id", in.AppointmentID).Msg("refresh after delete failed")
	}

	return &snapshot, nil
}
