package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/dto"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

type auditor interface {
	Dispatch(ev audit.Event)
}

// DaySnapshot é a leitura fresca de um dia após qualquer escrita. Nada é
// remendado em memória: ocupação e lista vêm do banco.
type DaySnapshot struct {
	Date         string                   `json:"date"`
	Capacity     int                      `json:"capacity"`
	Occupancy    domain.Occupancy         `json:"occupancy"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

func refreshDay(
	ctx context.Context,
	repo domain.Repository,
	hangar *models.Hangar,
	date string,
) (DaySnapshot, error) {

	apps, err := repo.ListAppointmentsByDate(ctx, hangar.ID, date)
	if err != nil {
		return DaySnapshot{}, persistence(err)
	}

	return DaySnapshot{
		Date:         date,
		Capacity:     hangar.BoxCapacity,
		Occupancy:    domain.OccupancyFor(date, apps),
		Appointments: dto.FromAppointments(apps),
	}, nil
}

func loadHangar(ctx context.Context, repo domain.Repository, id uint) (*models.Hangar, error) {
	h, err := repo.GetHangarByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.CodeHangarNotFound)
	}
	return h, nil
}

// persistence classifica erro técnico do repositório; erros de negócio passam intactos.
func persistence(err error) error {
	if err == nil {
		return nil
	}
	if _, _, ok := httperr.CodeOf(err); ok {
		return err
	}
	return httperr.Wrap(domain.CodePersistenceFailure, err)
}

func notFoundOr(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return persistence(err)
}
