package entity

import (
	"time"

	"github.com/google/uuid"
)

// Operation enumerates the arithmetic operations a calculation can perform.
type Operation string

const (
	OperationAddition       Operation = "addition"
	OperationSubtraction    Operation = "subtraction"
	OperationMultiplication Operation = "multiplication"
	OperationDivision       Operation = "division"
)

// Valid reports whether the operation is one of the supported kinds.
func (op Operation) Valid() bool {
	switch op {
	case OperationAddition, OperationSubtraction, OperationMultiplication, OperationDivision:
		return true
	default:
		return false
	}
}

// Calculation is an owner-scoped record of a single arithmetic operation.
// UserID is set at creation and never changes; only the owner may read or
// mutate the record.
type Calculation struct {
	ID        uuid.UUID // The unique identifier for this calculation.
	UserID    uuid.UUID // The owning user. Immutable after creation.
	Operation Operation // The arithmetic operation performed.
	Operand1  float64   // The left operand.
	Operand2  float64   // The right operand.
	Result    float64   // The server-computed result of the operation.
	CreatedAt time.Time // Timestamp of when this calculation was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
