package cli

import (
	"context"
	"database/sql"
	"fmt"

	"pausepad/internal/db"
)

func openStore(ctx context.Context, path string) (*sql.DB, error) {
	database, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.RunMigrations(ctx, database, db.MigrationSource("")); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("prepare %s: %w", path, err)
	}
	return database, nil
}
