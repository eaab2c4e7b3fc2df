package postgres

import (
	"context"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = "schema_migrations"

func migrationSource() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate aplica as migrações pendentes e devolve quantas foram executadas.
func (c *Connection) Migrate(ctx context.Context) (int, error) {
	migrate.SetTable(migrationsTable)

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)

	go func() {
		n, err := migrate.Exec(c.DB.DB, "postgres", migrationSource(), migrate.Up)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("erro ao aplicar migrações: %w", r.err)
		}
		logrus.WithField("applied", r.n).Info("Migrações aplicadas")
		return r.n, nil
	}
}

// PendingMigrations lista as migrações ainda não aplicadas.
func (c *Connection) PendingMigrations() ([]string, error) {
	migrate.SetTable(migrationsTable)

	planned, _, err := migrate.PlanMigration(c.DB.DB, "postgres", migrationSource(), migrate.Up, 0)
	if err != nil {
		return nil, fmt.Errorf("erro ao planejar migrações: %w", err)
	}

	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}
