package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HangarID uint `gorm:"index:idx_appointment_slot" json:"hangar_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	ServiceID   *uint  `json:"service_id"`
	ServiceType string `gorm:"size:100" json:"service_type"`
	BoxID       *uint  `json:"box_id"`

	Date            string  `gorm:"size:10;index:idx_appointment_slot" json:"date"`
	Time            string  `gorm:"size:5;index:idx_appointment_slot" json:"time"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`

	Status string `gorm:"size:20;default:'NOVO'" json:"status"`

	Observation        string `gorm:"size:255" json:"observation"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
