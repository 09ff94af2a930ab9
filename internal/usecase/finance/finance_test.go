package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	appointment "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

type ledgerRepo struct {
	hangar  models.Hangar
	apps    []models.Appointment
	entries []models.Expense
	failed  error
}

func (r *ledgerRepo) GetHangarByID(_ context.Context, id uint) (*models.Hangar, error) {
	if id != r.hangar.ID {
		return nil, appointment.ErrNotFound
	}
	h := r.hangar
	return &h, nil
}

func (r *ledgerRepo) ListFinishedAppointments(_ context.Context, _ uint, from, to string) ([]models.Appointment, error) {
	if r.failed != nil {
		return nil, r.failed
	}
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.Status == "FINALIZADO" && ap.Date >= from && ap.Date <= to {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *ledgerRepo) ListEntries(_ context.Context, _ uint, from, to string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range r.entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *ledgerRepo) CreateEntry(_ context.Context, e *models.Expense) error {
	e.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *e)
	return nil
}

func (r *ledgerRepo) DeleteEntry(_ context.Context, _ uint, id uint) (bool, error) {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type nopAuditor struct{ n int }

func (a *nopAuditor) Dispatch(audit.Event) { a.n++ }

var clock = timezone.ClockFunc(func() time.Time {
	return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
})

func newLedger() *ledgerRepo {
	return &ledgerRepo{
		hangar: models.Hangar{ID: 1, Timezone: "America/Sao_Paulo"},
		apps: []models.Appointment{
			{Date: "2026-03-02", Price: 120, Status: "FINALIZADO"},
			{Date: "2026-03-09", Price: 80, Status: "FINALIZADO"},
			{Date: "2026-02-27", Price: 200, Status: "FINALIZADO"},
			{Date: "2026-03-09", Price: 500, Status: "CONFIRMADO"},
		},
		entries: []models.Expense{
			{ID: 1, Date: "2026-03-05", Amount: 40, Type: "RECEITA"},
			{ID: 2, Date: "2026-03-06", Amount: 90, Type: "DESPESA"},
		},
	}
}

func TestGetFinancialSummaryDefaultsToCurrentMonth(t *testing.T) {
	uc := NewGetFinancialSummary(newLedger(), clock)

	s, err := uc.Execute(context.Background(), SummaryInput{HangarID: 1})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", s.From)
	assert.Equal(t, "2026-03-10", s.To)
	assert.Equal(t, 200.0, s.AppointmentRevenue)
	assert.Equal(t, 240.0, s.Revenue)
	assert.Equal(t, 90.0, s.Expenses)
	assert.Equal(t, 150.0, s.NetProfit)

	require.Len(t, s.Daily, 7)
	assert.Equal(t, "2026-03-04", s.Daily[0].Date)
	assert.Equal(t, 80.0, s.Daily[5].Income)
}

func TestGetFinancialSummaryErrors(t *testing.T) {
	repo := newLedger()
	uc := NewGetFinancialSummary(repo, clock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, SummaryInput{HangarID: 1, From: "2026-03-10", To: "2026-03-01"})
	assert.True(t, httperr.IsBusiness(err, appointment.CodeInvalidDateOrTime))

	_, err = uc.Execute(ctx, SummaryInput{HangarID: 7})
	assert.True(t, httperr.IsBusiness(err, appointment.CodeHangarNotFound))

	repo.failed = errors.New("timeout")
	_, err = uc.Execute(ctx, SummaryInput{HangarID: 1})
	assert.True(t, httperr.IsBusiness(err, appointment.CodePersistenceFailure))
}

func TestEntries(t *testing.T) {
	repo := newLedger()
	aud := &nopAuditor{}
	uc := NewEntries(repo, aud)
	ctx := context.Background()

	e, err := uc.Create(ctx, EntryInput{HangarID: 1, Description: " Shampoo ", Amount: 35, Date: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "Shampoo", e.Description)
	assert.Equal(t, "DESPESA", e.Type)

	_, err = uc.Create(ctx, EntryInput{HangarID: 1, Description: "x", Amount: 0, Date: "2026-03-10"})
	assert.True(t, httperr.IsBusiness(err, CodeInvalidEntry))

	list, err := uc.List(ctx, 1, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-03-10", list[0].Date)

	require.NoError(t, uc.Delete(ctx, 1, nil, e.ID))
	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, 1, nil, e.ID), "ledger_entry_not_found"))
	assert.Equal(t, 2, aud.n)
}
