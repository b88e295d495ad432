package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ListSortedByName(t *testing.T) {
	r := NewRegistry()
	r.Register(&WaitForDBCommand{})
	r.Register(&MigrateCommand{})
	r.Register(&HealthCheckCommand{})

	var names []string
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"health-check", "migrate", "wait-for-db"}, names)

	_, ok := r.Get("deploy")
	assert.False(t, ok)
}

func TestDatabaseURL(t *testing.T) {
	t.Run("explicit url wins", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://x@y/z")
		assert.Equal(t, "postgres://x@y/z", databaseURL())
	})

	t.Run("assembled from parts", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		t.Setenv("DB_USER", "eco")
		t.Setenv("DB_PASSWORD", "pw")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("DB_NAME", "hunt")
		assert.Equal(t, "postgres://eco:pw@db:6543/hunt?sslmode=disable", databaseURL())
	})
}

func TestMigrateCommand_RequiresSubcommand(t *testing.T) {
	err := (&MigrateCommand{}).Run(nil)
	assert.ErrorContains(t, err, "subcommand required")
}
