package appointment

import "github.com/BruksfildServices01/hangar-scheduler/internal/models"

// Occupancy conta agendamentos não cancelados por horário exato de início.
// Não considera sobreposição por duração: horários diferentes não disputam box.
type Occupancy map[string]int

func OccupancyFor(date string, appointments []models.Appointment) Occupancy {
	occ := make(Occupancy)
	for _, ap := range appointments {
		if ap.Date != date || !Status(ap.Status).CountsTowardOccupancy() {
			continue
		}
		occ[ap.Time]++
	}
	return occ
}

func (o Occupancy) Admissible(clock string, capacity int) bool {
	return o[clock] < capacity
}

type SlotAvailability struct {
	Time      string `json:"time"`
	Booked    int    `json:"booked"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

func (o Occupancy) Annotate(slots []string, capacity int) []SlotAvailability {
	out := make([]SlotAvailability, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotAvailability{
			Time:      s,
			Booked:    o[s],
			Capacity:  capacity,
			Available: o.Admissible(s, capacity),
		})
	}
	return out
}
