package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"exampleapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the first step; its presence means the schema exists.
const sentinelTable = "public.blogs"

var steps = []migrationStep{
	{
		Name: "create_table_blogs",
		SQL: `CREATE TABLE IF NOT EXISTS blogs (
  id          BIGSERIAL    PRIMARY KEY,
  name        VARCHAR(100) NOT NULL,
  tagline     TEXT         NOT NULL,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_authors",
		SQL: `CREATE TABLE IF NOT EXISTS authors (
  id          BIGSERIAL    PRIMARY KEY,
  name        VARCHAR(50)  NOT NULL,
  email       VARCHAR(254) NOT NULL,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_author_bios",
		SQL: `CREATE TABLE IF NOT EXISTS author_bios (
  id          BIGSERIAL   PRIMARY KEY,
  author_id   BIGINT      NOT NULL UNIQUE REFERENCES authors (id) ON DELETE CASCADE,
  body        TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_entries",
		SQL: `CREATE TABLE IF NOT EXISTS entries (
  id          BIGSERIAL    PRIMARY KEY,
  blog_id     BIGINT       NOT NULL REFERENCES blogs (id) ON DELETE CASCADE,
  headline    VARCHAR(255) NOT NULL,
  body_text   TEXT,
  pub_date    DATE,
  mod_date    DATE,
  n_comments  INTEGER      NOT NULL DEFAULT 0,
  n_pingbacks INTEGER      NOT NULL DEFAULT 0,
  rating      INTEGER      NOT NULL DEFAULT 0,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_entries_blog_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_entries_blog_id ON entries (blog_id);`,
	},
	{
		Name: "create_table_entry_authors",
		SQL: `CREATE TABLE IF NOT EXISTS entry_authors (
  entry_id  BIGINT NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
  author_id BIGINT NOT NULL REFERENCES authors (id) ON DELETE CASCADE,
  PRIMARY KEY (entry_id, author_id)
);`,
	},
	{
		Name: "create_index_entry_authors_author_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_entry_authors_author_id ON entry_authors (author_id);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id          BIGSERIAL   PRIMARY KEY,
  entry_id    BIGINT      NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
  body        TEXT        NOT NULL,
  author_id   BIGINT      REFERENCES authors (id) ON DELETE SET NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_comments_entry_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_entry_id ON comments (entry_id);`,
	},
	{
		Name: "create_table_targets",
		SQL: `CREATE TABLE IF NOT EXISTS targets (
  id                  BIGSERIAL    PRIMARY KEY,
  audience_id         BIGINT       NOT NULL,
  base_audience_id    BIGINT       NOT NULL,
  brand_id            BIGINT       NOT NULL,
  created             TIMESTAMPTZ  NOT NULL DEFAULT now(),
  creator             BIGINT,
  name                VARCHAR(191),
  instagram_placement BOOLEAN      NOT NULL DEFAULT false,
  latest_profile_id   BIGINT
);`,
	},
	{
		Name: "create_indexes_targets",
		SQL: `CREATE INDEX IF NOT EXISTS idx_targets_brand_id ON targets (brand_id);
CREATE INDEX IF NOT EXISTS idx_targets_created ON targets (created);
CREATE INDEX IF NOT EXISTS idx_targets_name ON targets (name);
CREATE INDEX IF NOT EXISTS idx_targets_instagram_placement ON targets (instagram_placement);`,
	},
	{
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id                  BIGSERIAL   PRIMARY KEY,
  target_id           BIGINT      NOT NULL REFERENCES targets (id) ON DELETE CASCADE,
  created             TIMESTAMPTZ NOT NULL DEFAULT now(),
  audience_reach      BIGINT      NOT NULL,
  base_audience_reach BIGINT      NOT NULL,
  bias_normalizer     BOOLEAN     NOT NULL DEFAULT false
);`,
	},
	{
		Name: "create_index_profiles_target_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_profiles_target_id ON profiles (target_id);`,
	},
	{
		// targets and profiles reference each other; the back edge is added once both exist.
		Name: "add_fk_targets_latest_profile",
		SQL: `ALTER TABLE targets
  ADD CONSTRAINT targets_latest_profile_id_fkey
  FOREIGN KEY (latest_profile_id) REFERENCES profiles (id) ON DELETE SET NULL;`,
	},
	{
		Name: "create_table_facebook_ad_targeting_categories",
		SQL: `CREATE TABLE IF NOT EXISTS facebook_ad_targeting_categories (
  id            BIGSERIAL    PRIMARY KEY,
  audience_type VARCHAR(128) NOT NULL,
  platform_id   VARCHAR(128) NOT NULL,
  name          VARCHAR(128) NOT NULL,
  description   VARCHAR(256),
  path          VARCHAR(256),
  last_updated  DATE         NOT NULL DEFAULT CURRENT_DATE
);`,
	},
	{
		Name: "create_indexes_facebook_ad_targeting_categories",
		SQL: `CREATE INDEX IF NOT EXISTS idx_categories_audience_type ON facebook_ad_targeting_categories (audience_type);
CREATE INDEX IF NOT EXISTS idx_categories_name ON facebook_ad_targeting_categories (name);`,
	},
	{
		Name: "create_table_profile_data",
		SQL: `CREATE TABLE IF NOT EXISTS profile_data (
  id                BIGSERIAL        PRIMARY KEY,
  category_id       BIGINT           NOT NULL REFERENCES facebook_ad_targeting_categories (id) ON DELETE CASCADE,
  biased_index      DOUBLE PRECISION NOT NULL,
  unbiased_index    DOUBLE PRECISION,
  opportunity_score DOUBLE PRECISION NOT NULL,
  reach_audience    BIGINT           NOT NULL,
  reach_base        BIGINT           NOT NULL,
  created_time      TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_indexes_profile_data",
		SQL: `CREATE INDEX IF NOT EXISTS idx_profile_data_category_id ON profile_data (category_id);
CREATE INDEX IF NOT EXISTS idx_profile_data_biased_index ON profile_data (biased_index);
CREATE INDEX IF NOT EXISTS idx_profile_data_unbiased_index ON profile_data (unbiased_index);
CREATE INDEX IF NOT EXISTS idx_profile_data_opportunity_score ON profile_data (opportunity_score);
CREATE INDEX IF NOT EXISTS idx_profile_data_created_time ON profile_data (created_time);`,
	},
}

// EnsureMigrated creates the schema when the sentinel table is missing.
// All steps run in a single transaction so a failed step leaves no partial schema.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *logging.Logger, dbHost string) error {
	start := time.Now()

	logger.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		logger.Log(map[string]any{
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
		logger.Log(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logger.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
		"steps":     len(steps),
	})

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			logger.Log(map[string]any{
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

		logger.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if err := tx.Commit(); err != nil {
		logger.Log(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("commit: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("commit migration: %w", err)
	}

	logger.Log(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
