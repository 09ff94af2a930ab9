package appointment

import (
	"sort"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

// ===============================
// Derived metrics (never persisted)
// ===============================

const LoyaltyCycle = 10

func RevenueForDate(apps []models.Appointment, date string) float64 {
	var total float64
	for _, ap := range apps {
		if ap.Date == date && Status(ap.Status) == StatusFinished {
			total += ap.Price
		}
	}
	return total
}

// OccupancyRate é EM_EXECUCAO do dia sobre a capacidade de boxes.
func OccupancyRate(apps []models.Appointment, date string, capacity int) float64 {
	if capacity <= 0 {
		capacity = 1
	}
	running := 0
	for _, ap := range apps {
		if ap.Date == date && Status(ap.Status) == StatusInProgress {
			running++
		}
	}
	return float64(running) / float64(capacity)
}

type CustomerStat struct {
	Washes     int     `json:"washes"`
	TotalSpent float64 `json:"total_spent"`
}

// CustomerStats recalcula lavagens e valor gasto a partir dos FINALIZADO.
func CustomerStats(apps []models.Appointment) map[uint]CustomerStat {
	out := make(map[uint]CustomerStat)
	for _, ap := range apps {
		if Status(ap.Status) != StatusFinished {
			continue
		}
		st := out[ap.CustomerID]
		st.Washes++
		st.TotalSpent += ap.Price
		out[ap.CustomerID] = st
	}
	return out
}

func CustomerLifetimeValue(apps []models.Appointment, customerID uint) float64 {
	return CustomerStats(apps)[customerID].TotalSpent
}

type Loyalty struct {
	Washes          int  `json:"washes"`
	Progress        int  `json:"progress"`
	RewardAvailable bool `json:"reward_available"`
	VIP             bool `json:"vip"`
}

func LoyaltyFor(washes int) Loyalty {
	return Loyalty{
		Washes:          washes,
		Progress:        washes % LoyaltyCycle,
		RewardAvailable: washes > 0 && washes%LoyaltyCycle == 0,
		VIP:             washes >= LoyaltyCycle,
	}
}

func CountByStatus(apps []models.Appointment, date string) map[Status]int {
	out := map[Status]int{
		StatusNew:        0,
		StatusConfirmed:  0,
		StatusInProgress: 0,
		StatusFinished:   0,
		StatusCancelled:  0,
	}
	for _, ap := range apps {
		if date != "" && ap.Date != date {
			continue
		}
		out[Status(ap.Status)]++
	}
	return out
}

// Inbox: NOVO aguardando confirmação, em ordem de data e hora.
func Inbox(apps []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range apps {
		if Status(ap.Status) == StatusNew {
			out = append(out, ap)
		}
	}
	sortByDateTime(out)
	return out
}

// ProductionLine: o que já foi aceito para o dia (sem NOVO nem CANCELADO).
func ProductionLine(apps []models.Appointment, date string) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range apps {
		st := Status(ap.Status)
		if ap.Date != date || st == StatusNew || st == StatusCancelled {
			continue
		}
		out = append(out, ap)
	}
	sortByDateTime(out)
	return out
}

func sortByDateTime(apps []models.Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].Date != apps[j].Date {
			return apps[i].Date < apps[j].Date
		}
		return apps[i].Time < apps[j].Time
	})
}
