package models

import "time"

// Cliente da estética. O telefone é a chave natural de deduplicação dentro
// do hangar; lavagens e total gasto são sempre recalculados.
type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	HangarID uint `gorm:"index:idx_customer_phone" json:"hangar_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index:idx_customer_phone" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Vehicles []Vehicle `gorm:"constraint:OnDelete:CASCADE;" json:"vehicles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Vehicle struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	HangarID   uint `json:"hangar_id"`
	CustomerID uint `gorm:"index:idx_vehicle_plate" json:"customer_id"`

	Brand string `gorm:"size:50" json:"brand"`
	Model string `gorm:"size:50" json:"model"`
	Plate string `gorm:"size:7;index:idx_vehicle_plate" json:"plate"`
	Color string `gorm:"size:30" json:"color"`
	Type  string `gorm:"size:20" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}
