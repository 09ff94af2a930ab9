package models

import "time"

// Hangar é o tenant: uma estética automotiva com agenda pública própria.
type Hangar struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	WhatsApp string `gorm:"size:20" json:"whatsapp"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	BoxCapacity         int `gorm:"not null" json:"box_capacity"`
	PatioCapacity       int `json:"patio_capacity"`
	SlotIntervalMinutes int `gorm:"not null" json:"slot_interval_minutes"`

	LoyaltyProgramEnabled bool `json:"loyalty_program_enabled"`
	OnlineBookingEnabled  bool `json:"online_booking_enabled"`

	OperatingRules []OperatingRule `gorm:"constraint:OnDelete:CASCADE;" json:"operating_days"`
	BlockedDates   []BlockedDate   `gorm:"constraint:OnDelete:CASCADE;" json:"blocked_dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
