package entity

import "time"

type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Identity() Identity {
	return Identity{Email: s.Email, Name: s.Name}
}
