package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/dto"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

const openEndDate = "9999-12-31"

type Dashboard struct {
	Date           string                   `json:"date"`
	RevenueToday   float64                  `json:"revenue_today"`
	OccupancyRate  float64                  `json:"occupancy_rate"`
	BoxCapacity    int                      `json:"box_capacity"`
	StatusCounts   map[domain.Status]int    `json:"status_counts"`
	Inbox          []dto.AppointmentListDTO `json:"inbox"`
	ProductionLine []dto.AppointmentListDTO `json:"production_line"`
}

// GetDashboard recalcula tudo a cada leitura.
type GetDashboard struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetDashboard(repo domain.Repository, clock timezone.Clock) *GetDashboard {
	return &GetDashboard{repo: repo, clock: clock}
}

func (uc *GetDashboard) Execute(ctx context.Context, hangarID uint) (*Dashboard, error) {
	hangar, err := loadHangar(ctx, uc.repo, hangarID)
	if err != nil {
		return nil, err
	}

	today := timezone.Today(uc.clock, hangar.Timezone)

	upcoming, err := uc.repo.ListAppointmentsForPeriod(ctx, hangarID, today, openEndDate)
	if err != nil {
		return nil, persistence(err)
	}

	return &Dashboard{
		Date:           today,
		RevenueToday:   domain.RevenueForDate(upcoming, today),
		OccupancyRate:  domain.OccupancyRate(upcoming, today, hangar.BoxCapacity) * 100,
		BoxCapacity:    hangar.BoxCapacity,
		StatusCounts:   domain.CountByStatus(upcoming, today),
		Inbox:          dto.FromAppointments(domain.Inbox(upcoming)),
		ProductionLine: dto.FromAppointments(domain.ProductionLine(upcoming, today)),
	}, nil
}
