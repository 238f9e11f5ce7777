package model

import "time"

// Simulation is one stored outcome of a simulate call. UserID is a lookup
// key only; there is no foreign key because users are never deleted.
type Simulation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index:idx_strategies_user_created,priority:1"`
	Platform    string    `json:"platform" gorm:"size:64;not null"`
	EntryTime   string    `json:"entry_time" gorm:"size:64;not null"`
	TicketType  string    `json:"ticket_type" gorm:"size:64;not null"`
	Network     string    `json:"network" gorm:"size:64;not null"`
	SuccessRate int       `json:"success_rate" gorm:"not null"`
	Suggestion  string    `json:"suggestion" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_strategies_user_created,priority:2"`
}

// TableName stores simulations in the strategies table.
func (Simulation) TableName() string {
	return "strategies"
}
