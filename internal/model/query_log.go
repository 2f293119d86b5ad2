package model

import "time"

// QueryLog is one answered question, persisted asynchronously for auditing.
type QueryLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionToken string    `gorm:"size:64;not null;index" json:"session_token"`
	Question     string    `gorm:"type:text;not null" json:"question"`
	Response     string    `gorm:"type:text" json:"response"`
	CreatedAt    time.Time `json:"created_at"`
}
