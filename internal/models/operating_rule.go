package models

type OperatingRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	HangarID uint `gorm:"uniqueIndex:idx_rule_weekday" json:"hangar_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_rule_weekday" json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
}

type BlockedDate struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HangarID uint   `gorm:"uniqueIndex:idx_blocked_date" json:"hangar_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_blocked_date" json:"date"`
	Reason   string `gorm:"size:255" json:"reason"`
}
