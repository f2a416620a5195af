package repository

import (
	"github.com/soundscope/soundscope-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User UserRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}
