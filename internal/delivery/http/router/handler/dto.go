package handler

import (
	"time"

	"tally/internal/domain/entity"
	"tally/internal/usecase"
)

// UserResponse is the public view of an account. The password hash never
// leaves the server.
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresAt    time.Time     `json:"expires_at"`
	User         *UserResponse `json:"user"`
}

// CalculationResponse is the public view of a calculation record.
type CalculationResponse struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Operand1  float64   `json:"operand1"`
	Operand2  float64   `json:"operand2"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func toTokenResponse(output *usecase.LoginOutput) *TokenResponse {
	return &TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    output.TokenType,
		ExpiresAt:    output.ExpiresAt,
		User:         toUserResponse(output.User),
	}
}

func toCalculationResponse(calculation *entity.Calculation) *CalculationResponse {
	if calculation == nil {
		return nil
	}

	return &CalculationResponse{
		ID:        calculation.ID.String(),
		Operation: string(calculation.Operation),
		Operand1:  calculation.Operand1,
		Operand2:  calculation.Operand2,
		Result:    calculation.Result,
		CreatedAt: calculation.CreatedAt,
		UpdatedAt: calculation.UpdatedAt,
	}
}

func toCalculationResponses(calculations []*entity.Calculation) []*CalculationResponse {
	responses := make([]*CalculationResponse, 0, len(calculations))
	for _, calculation := range calculations {
		responses = append(responses, toCalculationResponse(calculation))
	}

	return responses
}
