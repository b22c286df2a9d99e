package user

import (
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
)

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	audit.Fields
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}
