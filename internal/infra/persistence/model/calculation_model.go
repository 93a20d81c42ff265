package model

import (
	"time"

	"github.com/google/uuid"
)

// CalculationModel mirrors the 'calculations' table.
type CalculationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Operation string    `gorm:"type:varchar(20);not null"`
	Operand1  float64   `gorm:"not null"`
	Operand2  float64   `gorm:"not null"`
	Result    float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CalculationModel) TableName() string {
	return "calculations"
}
