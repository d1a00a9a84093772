package models

import (
	"time"
)

// Analysis is immutable once written; the only mutation is a hard delete.
type Analysis struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int       `json:"user_id" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	OriginalText   string    `json:"original_text" gorm:"type:text;not null"`
	Kind           string    `json:"analysis_type" gorm:"column:analysis_type;type:varchar(50);not null"`
	Result         string    `json:"result" gorm:"type:text;not null"`
	Confidence     *float64  `json:"confidence_score,omitempty" gorm:"column:confidence_score"`
	ProcessingTime *string   `json:"processing_time,omitempty" gorm:"type:varchar(20)"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
