package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type migrationStep struct {
	name string
	sql  string
}

var migrationSteps = []migrationStep{
	{
		name: "create_extension_uuid_ossp",
		sql:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		name: "create_table_files",
		sql: `CREATE TABLE IF NOT EXISTS files (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  serial_number BIGINT      NOT NULL UNIQUE,
  file_name     TEXT        NOT NULL,
  file_path     TEXT        NOT NULL,
  size_bytes    BIGINT      NOT NULL CHECK (size_bytes >= 0),
  mime_type     TEXT        NOT NULL,
  upload_time   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		name: "create_index_files_file_name",
		sql:  `CREATE INDEX IF NOT EXISTS idx_files_file_name ON files (file_name);`,
	},
	{
		name: "create_index_files_upload_time",
		sql:  `CREATE INDEX IF NOT EXISTS idx_files_upload_time ON files (upload_time DESC);`,
	},
	{
		name: "create_table_file_serials",
		sql: `CREATE TABLE IF NOT EXISTS file_serials (
  id    SMALLINT PRIMARY KEY,
  value BIGINT   NOT NULL
);`,
	},
	{
		// seed the counter from any pre-existing records so reserved
		// serials never collide with rows written before the counter existed
		name: "seed_file_serials",
		sql: `INSERT INTO file_serials (id, value)
SELECT 1, COALESCE(MAX(serial_number), 0) FROM files
ON CONFLICT (id) DO NOTHING;`,
	},
	{
		name: "create_table_accounts",
		sql: `CREATE TABLE IF NOT EXISTS accounts (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  account       TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		name: "create_table_user_infos",
		sql: `CREATE TABLE IF NOT EXISTS user_infos (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  age        INT         NOT NULL DEFAULT 0,
  interests  TEXT[]      NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// Migrate applies the schema steps in order. All steps are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, step := range migrationSteps {
		if _, err := pool.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("migration step %s: %w", step.name, err)
		}
	}
	return nil
}
