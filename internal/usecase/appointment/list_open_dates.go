package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

const maxOpenDatesHorizon = 90

type ListOpenDates struct {
	repo    domain.Repository
	clock   timezone.Clock
	horizon int
}

func NewListOpenDates(repo domain.Repository, clock timezone.Clock, horizon int) *ListOpenDates {
	return &ListOpenDates{repo: repo, clock: clock, horizon: horizon}
}

// Execute começa em hoje; dias anteriores nunca são oferecidos.
func (uc *ListOpenDates) Execute(
	ctx context.Context,
	hangarID uint,
	days int,
) ([]string, error) {

	hangar, err := loadHangar(ctx, uc.repo, hangarID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = uc.horizon
	}
	if days > maxOpenDatesHorizon {
		days = maxOpenDatesHorizon
	}

	today := timezone.NowIn(uc.clock, hangar.Timezone)
	return domain.CalendarFor(hangar).OpenDates(today, days), nil
}
