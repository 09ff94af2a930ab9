package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

type Availability struct {
	Date      string                    `json:"date"`
	Open      bool                      `json:"open"`
	OpenTime  string                    `json:"open_time,omitempty"`
	CloseTime string                    `json:"close_time,omitempty"`
	Interval  int                       `json:"slot_interval_minutes"`
	Capacity  int                       `json:"box_capacity"`
	Slots     []domain.SlotAvailability `json:"slots"`
}

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	hangarID uint,
	date string,
) (*Availability, error) {

	hangar, err := loadHangar(ctx, uc.repo, hangarID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(hangar.Timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	out := &Availability{
		Date:     date,
		Interval: hangar.SlotIntervalMinutes,
		Capacity: hangar.BoxCapacity,
		Slots:    []domain.SlotAvailability{},
	}

	// datas passadas nem chegam ao calendário
	if date < timezone.Today(uc.clock, hangar.Timezone) {
		return out, nil
	}

	cal := domain.CalendarFor(hangar)
	w, ok := cal.WindowFor(day)
	if !ok {
		return out, nil
	}
	out.Open = true
	out.OpenTime = w.OpenTime()
	out.CloseTime = w.CloseTime()

	now := timezone.NowIn(uc.clock, hangar.Timezone)
	slots := domain.GenerateSlots(day, w, hangar.SlotIntervalMinutes, now)
	if len(slots) == 0 {
		return out, nil
	}

	apps, err := uc.repo.ListAppointmentsByDate(ctx, hangarID, date)
	if err != nil {
		return nil, persistence(err)
	}

	out.Slots = domain.OccupancyFor(date, apps).Annotate(slots, hangar.BoxCapacity)
	return out, nil
}
