package pgsql

import (
	portsrepo "github.com/hardiknj/auth_session_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer bundles the concrete pgx repositories for injection.
type RepositoryContainer struct {
	User    portsrepo.UserRepository
	Session portsrepo.SessionRepository
}

// NewRepositoryContainer creates all repositories backed by the given pool.
func NewRepositoryContainer(db *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		User:    NewPgxUserRepository(db),
		Session: NewPgxSessionRepository(db),
	}
}
