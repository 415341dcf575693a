package entity

// Identity is what the reservation engine knows about a caller.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
