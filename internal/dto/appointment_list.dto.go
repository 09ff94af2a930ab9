package dto

import "github.com/BruksfildServices01/hangar-scheduler/internal/models"

type AppointmentListDTO struct {
	ID              uint    `json:"id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	ServiceType     string  `json:"service_type"`
	Price           float64 `json:"price"`
	BoxID           *uint   `json:"box_id"`
	Observation     string  `json:"observation"`

	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	VehicleID    uint   `json:"vehicle_id"`
	VehicleModel string `json:"vehicle_model"`
	VehiclePlate string `json:"vehicle_plate"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:              ap.ID,
		Date:            ap.Date,
		Time:            ap.Time,
		DurationMinutes: ap.DurationMinutes,
		Status:          ap.Status,
		ServiceType:     ap.ServiceType,
		Price:           ap.Price,
		BoxID:           ap.BoxID,
		Observation:     ap.Observation,
		CustomerID:      ap.CustomerID,
		CustomerName:    ap.Customer.Name,
		CustomerPhone:   ap.Customer.Phone,
		VehicleID:       ap.VehicleID,
		VehicleModel:    ap.Vehicle.Model,
		VehiclePlate:    ap.Vehicle.Plate,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
