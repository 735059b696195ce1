package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  status       TEXT        NOT NULL DEFAULT 'uploaded'
               CHECK (status IN ('uploaded', 'processing', 'processed', 'failed')),
  page_count   INT         NOT NULL DEFAULT 0,
  error        TEXT        NOT NULL DEFAULT '',
  uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  processed_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_documents_uploaded_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents (uploaded_at);`,
	},
	{
		Name: "create_table_securities",
		SQL: `CREATE TABLE IF NOT EXISTS securities (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID    NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  isin        CHAR(12) NOT NULL,
  name        TEXT    NOT NULL,
  quantity    DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
  price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
  value       DOUBLE PRECISION NOT NULL CHECK (value >= 0),
  currency    CHAR(3) NOT NULL,
  weight      DOUBLE PRECISION NOT NULL CHECK (weight >= 0 AND weight <= 1),
  UNIQUE (document_id, isin)
);`,
	},
	{
		Name: "create_index_securities_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_securities_document_id ON securities (document_id);`,
	},
	{
		Name: "create_index_securities_isin",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_securities_isin ON securities (isin);`,
	},
	{
		Name: "create_table_portfolios",
		SQL: `CREATE TABLE IF NOT EXISTS portfolios (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID    NOT NULL UNIQUE REFERENCES documents (id) ON DELETE CASCADE,
  name        TEXT    NOT NULL,
  total_value DOUBLE PRECISION NOT NULL CHECK (total_value >= 0),
  currency    CHAR(3) NOT NULL,
  holdings    INT     NOT NULL CHECK (holdings >= 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_batch_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS batch_jobs (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  type            TEXT        NOT NULL,
  status          TEXT        NOT NULL DEFAULT 'pending'
                  CHECK (status IN ('pending', 'running', 'completed', 'failed', 'cancelled')),
  total_items     INT         NOT NULL DEFAULT 0 CHECK (total_items >= 0),
  processed_items INT         NOT NULL DEFAULT 0 CHECK (processed_items >= 0),
  failed_items    INT         NOT NULL DEFAULT 0 CHECK (failed_items >= 0),
  progress        INT         NOT NULL DEFAULT 0 CHECK (progress >= 0 AND progress <= 100),
  error           TEXT        NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  started_at      TIMESTAMPTZ,
  finished_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_batch_jobs_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_batch_jobs_status ON batch_jobs (status);`,
	},
	{
		Name: "create_table_feedback",
		SQL: `CREATE TABLE IF NOT EXISTS feedback (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  rating      INT         NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment     TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_feedback_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_feedback_document_id ON feedback (document_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.feedback') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
