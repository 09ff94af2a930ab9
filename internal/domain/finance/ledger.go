package finance

import (
	"context"
	"sort"
	"strings"
	"time"

	appointment "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

const (
	TypeIncome  = "RECEITA"
	TypeExpense = "DESPESA"

	// DailySeriesDays é a janela do gráfico de entradas e saídas.
	DailySeriesDays = 7
)

// NormalizeType: lançamento sem tipo conta como DESPESA.
func NormalizeType(t string) string {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case TypeIncome:
		return TypeIncome
	default:
		return TypeExpense
	}
}

type DailyPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type Summary struct {
	From string `json:"from"`
	To   string `json:"to"`

	Revenue            float64 `json:"revenue"`
	AppointmentRevenue float64 `json:"appointment_revenue"`
	ManualIncome       float64 `json:"manual_income"`
	Expenses           float64 `json:"expenses"`
	NetProfit          float64 `json:"net_profit"`

	FinishedCount int          `json:"finished_count"`
	Daily         []DailyPoint `json:"daily"`
}

// Summarize soma FINALIZADO + RECEITA contra DESPESA. Agendamentos em outro
// status nunca geram receita.
func Summarize(from, to string, apps []models.Appointment, entries []models.Expense) Summary {
	s := Summary{From: from, To: to, Daily: []DailyPoint{}}

	for _, ap := range apps {
		if appointment.Status(ap.Status) != appointment.StatusFinished {
			continue
		}
		if ap.Date < from || ap.Date > to {
			continue
		}
		s.AppointmentRevenue += ap.Price
		s.FinishedCount++
	}

	for _, e := range entries {
		if e.Date < from || e.Date > to {
			continue
		}
		if NormalizeType(e.Type) == TypeIncome {
			s.ManualIncome += e.Amount
		} else {
			s.Expenses += e.Amount
		}
	}

	s.Revenue = s.AppointmentRevenue + s.ManualIncome
	s.NetProfit = s.Revenue - s.Expenses
	return s
}

// DailySeries monta os últimos `days` dias terminando em `end`, inclusive.
func DailySeries(end time.Time, days int, apps []models.Appointment, entries []models.Expense) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}

	index := make(map[string]int, days)
	out := make([]DailyPoint, days)
	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, i-days+1).Format(timezone.DateLayout)
		out[i] = DailyPoint{Date: date}
		index[date] = i
	}

	for _, ap := range apps {
		i, ok := index[ap.Date]
		if !ok || appointment.Status(ap.Status) != appointment.StatusFinished {
			continue
		}
		out[i].Income += ap.Price
	}

	for _, e := range entries {
		i, ok := index[e.Date]
		if !ok {
			continue
		}
		if NormalizeType(e.Type) == TypeIncome {
			out[i].Income += e.Amount
		} else {
			out[i].Expense += e.Amount
		}
	}

	return out
}

// SortEntries: mais recentes primeiro.
func SortEntries(entries []models.Expense) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID > entries[j].ID
	})
}

type Repository interface {
	GetHangarByID(ctx context.Context, id uint) (*models.Hangar, error)

	ListFinishedAppointments(ctx context.Context, hangarID uint, from, to string) ([]models.Appointment, error)

	ListEntries(ctx context.Context, hangarID uint, from, to string) ([]models.Expense, error)
	CreateEntry(ctx context.Context, e *models.Expense) error
	DeleteEntry(ctx context.Context, hangarID, id uint) (bool, error)
}
