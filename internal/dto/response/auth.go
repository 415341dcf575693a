package response

import (
	"time"

	"library-seats/internal/data/entity"
)

type AuthResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func AuthToResponse(session *entity.Session) AuthResponse {
	return AuthResponse{
		Token:     session.Token,
		Email:     session.Email,
		Name:      session.Name,
		CreatedAt: session.CreatedAt,
	}
}

func SessionToResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		Email: session.Email,
		Name:  session.Name,
	}
}
