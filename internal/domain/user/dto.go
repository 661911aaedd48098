package user

import "time"

// Response represents user data in API responses
type Response struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	IsVerified         bool   `json:"is_verified"`
	CreatedAt          string `json:"created_at"`
}

func ToResponse(u User) Response {
	return Response{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               string(u.Role),
		VerificationStatus: string(u.VerificationStatus),
		IsVerified:         u.IsVerified(),
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
	}
}
