package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/dto"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	hangarID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		hangarID,
		first.Format(timezone.DateLayout),
		last.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, persistence(err)
	}

	return dto.FromAppointments(appointments), nil
}
