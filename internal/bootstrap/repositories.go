package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/EcoHunt_Go/internal/database/postgres"
	"github.com/osse101/EcoHunt_Go/internal/eventlog"
	"github.com/osse101/EcoHunt_Go/internal/repository"
)

// Repositories holds the Postgres-backed stores
type Repositories struct {
	Profile  repository.Profile
	Issuance repository.Issuance
	EventLog eventlog.Repository
}

// InitializeRepositories creates every repository on the shared pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profile:  postgres.NewProfileRepository(dbPool),
		Issuance: postgres.NewIssuanceRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
