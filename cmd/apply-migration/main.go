// 初始化快照归档表（幂等，可重复执行）
package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"schedview-snapshot/internal/config"
)

const createScheduleUploads = `
CREATE TABLE IF NOT EXISTS schedule_uploads (
    id              BIGSERIAL PRIMARY KEY,
    upload_id       UUID NOT NULL UNIQUE,
    company_name    TEXT NOT NULL DEFAULT '',
    data_format     TEXT NOT NULL,
    uploaded_at     TIMESTAMPTZ NOT NULL,
    start_date      TEXT NOT NULL DEFAULT '',
    end_date        TEXT NOT NULL DEFAULT '',
    total_jobs      INTEGER NOT NULL DEFAULT 0,
    total_teams     INTEGER NOT NULL DEFAULT 0,
    total_employees INTEGER NOT NULL DEFAULT 0,
    snapshot        JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedule_uploads_uploaded_at
    ON schedule_uploads (uploaded_at DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ping database: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.Exec(createScheduleUploads); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("schedule_uploads table is ready")
}
