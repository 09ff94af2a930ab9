package models

import "time"

// ServiceItem nunca é apagado, apenas desativado, para manter o histórico
// dos agendamentos que o referenciam.
type ServiceItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	HangarID uint `gorm:"index" json:"hangar_id"`

	Name            string   `gorm:"size:100;not null" json:"name"`
	Description     string   `gorm:"size:255" json:"description"`
	Category        string   `gorm:"size:50" json:"category"`
	DurationMinutes int      `gorm:"not null" json:"duration_minutes"`
	Price           float64  `json:"price"`
	Active          bool     `json:"is_active"`
	Compatible      []string `gorm:"serializer:json" json:"compatible_vehicles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceBay struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HangarID uint   `gorm:"uniqueIndex:idx_bay_name" json:"hangar_id"`
	Name     string `gorm:"size:60;uniqueIndex:idx_bay_name" json:"name"`
	Active   bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}
