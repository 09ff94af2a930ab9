package models

import "time"

// Usuário do console administrativo (dono ou equipe do hangar).
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HangarID uint   `json:"hangar_id"`
	Hangar   Hangar `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"hangar"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
