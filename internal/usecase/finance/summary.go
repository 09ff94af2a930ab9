package finance

import (
	"context"
	"errors"
	"time"

	appointment "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

type SummaryInput struct {
	HangarID uint
	From     string // opcional, default: primeiro dia do mês
	To       string // opcional, default: hoje
}

type GetFinancialSummary struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetFinancialSummary(repo domain.Repository, clock timezone.Clock) *GetFinancialSummary {
	return &GetFinancialSummary{repo: repo, clock: clock}
}

func (uc *GetFinancialSummary) Execute(
	ctx context.Context,
	in SummaryInput,
) (*domain.Summary, error) {

	hangar, err := uc.repo.GetHangarByID(ctx, in.HangarID)
	if err != nil {
		return nil, classify(err, appointment.CodeHangarNotFound)
	}

	// 1️⃣ Período
	now := timezone.NowIn(uc.clock, hangar.Timezone)
	from, to := in.From, in.To
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(timezone.DateLayout)
	}
	if to == "" {
		to = now.Format(timezone.DateLayout)
	}
	if !appointment.IsValidDate(from) || !appointment.IsValidDate(to) || from > to {
		return nil, httperr.ErrBusiness(appointment.CodeInvalidDateOrTime)
	}

	// 2️⃣ A série diária pode começar antes do período
	end, err := timezone.ParseDate(hangar.Timezone, to)
	if err != nil {
		return nil, httperr.ErrBusiness(appointment.CodeInvalidDateOrTime)
	}
	seriesFrom := end.AddDate(0, 0, 1-domain.DailySeriesDays).Format(timezone.DateLayout)
	readFrom := min(from, seriesFrom)

	apps, err := uc.repo.ListFinishedAppointments(ctx, hangar.ID, readFrom, to)
	if err != nil {
		return nil, classify(err, "")
	}
	entries, err := uc.repo.ListEntries(ctx, hangar.ID, readFrom, to)
	if err != nil {
		return nil, classify(err, "")
	}

	// 3️⃣ Consolidação
	summary := domain.Summarize(from, to, apps, entries)
	summary.Daily = domain.DailySeries(end, domain.DailySeriesDays, apps, entries)

	return &summary, nil
}

func classify(err error, notFound string) error {
	if notFound != "" && errors.Is(err, appointment.ErrNotFound) {
		return httperr.ErrBusiness(notFound)
	}
	if _, _, ok := httperr.CodeOf(err); ok {
		return err
	}
	return httperr.Wrap(appointment.CodePersistenceFailure, err)
}
