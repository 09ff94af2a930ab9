package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/dto"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	hangarID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if !domain.IsValidDate(date) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	appointments, err := uc.repo.ListAppointmentsByDate(ctx, hangarID, date)
	if err != nil {
		return nil, persistence(err)
	}

	return dto.FromAppointments(appointments), nil
}
