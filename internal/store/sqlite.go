package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mist/mist/internal/api"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes the SQLite database and creates necessary tables.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single writer keeps SQLite from returning SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	templatesQuery := `
	CREATE TABLE IF NOT EXISTS service_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		docker_image TEXT NOT NULL,
		docker_image_version TEXT NOT NULL DEFAULT '',
		default_port INTEGER NOT NULL DEFAULT 0,
		default_env_vars TEXT NOT NULL DEFAULT '{}',
		default_volumes TEXT NOT NULL DEFAULT '[]',
		recommended_cpu REAL NOT NULL DEFAULT 0,
		recommended_memory INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(templatesQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create service_templates table: %w", err)
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS system_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		wildcard_domain TEXT,
		mist_app_name TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create system_settings table: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO system_settings (id, wildcard_domain, mist_app_name) VALUES (1, NULL, ?) ON CONFLICT(id) DO NOTHING`, DefaultAppName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed system_settings: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

const templateColumns = `id, name, display_name, category, description, docker_image, docker_image_version, default_port, default_env_vars, default_volumes, recommended_cpu, recommended_memory, is_active, is_featured, sort_order, created_at, updated_at`

func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]api.ServiceTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM service_templates WHERE is_active = 1 ORDER BY sort_order, name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []api.ServiceTemplate{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tmpl)
	}
	return templates, rows.Err()
}

func (s *SQLiteStore) GetTemplateByName(ctx context.Context, name string) (*api.ServiceTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM service_templates WHERE name = ?`
	tmpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

func (s *SQLiteStore) UpsertTemplate(ctx context.Context, tmpl *api.ServiceTemplate) error {
	envVars, volumes, err := encodeTemplateCollections(tmpl)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
	INSERT INTO service_templates (name, display_name, category, description, docker_image, docker_image_version, default_port, default_env_vars, default_volumes, recommended_cpu, recommended_memory, is_active, is_featured, sort_order, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		display_name = excluded.display_name,
		category = excluded.category,
		description = excluded.description,
		docker_image = excluded.docker_image,
		docker_image_version = excluded.docker_image_version,
		default_port = excluded.default_port,
		default_env_vars = excluded.default_env_vars,
		default_volumes = excluded.default_volumes,
		recommended_cpu = excluded.recommended_cpu,
		recommended_memory = excluded.recommended_memory,
		is_active = excluded.is_active,
		is_featured = excluded.is_featured,
		sort_order = excluded.sort_order,
		updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		tmpl.Name,
		tmpl.DisplayName,
		tmpl.Category,
		tmpl.Description,
		tmpl.DockerImage,
		tmpl.DockerImageVersion,
		tmpl.DefaultPort,
		envVars,
		volumes,
		tmpl.RecommendedCPU,
		tmpl.RecommendedMemory,
		tmpl.IsActive,
		tmpl.IsFeatured,
		tmpl.SortOrder,
		now,
		now,
	)
	if err != nil {
		return err
	}

	stored, err := s.GetTemplateByName(ctx, tmpl.Name)
	if err != nil {
		return err
	}
	tmpl.ID = stored.ID
	tmpl.CreatedAt = stored.CreatedAt
	tmpl.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *SQLiteStore) GetSystemSettings(ctx context.Context) (*api.SystemSettings, error) {
	row := s.db.QueryRowContext(ctx, `SELECT wildcard_domain, mist_app_name FROM system_settings WHERE id = 1`)

	var wildcard sql.NullString
	var settings api.SystemSettings
	if err := row.Scan(&wildcard, &settings.MistAppName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	if wildcard.Valid && wildcard.String != "" {
		settings.WildcardDomain = &wildcard.String
	}
	return &settings, nil
}

func (s *SQLiteStore) UpdateSystemSettings(ctx context.Context, settings api.SystemSettings) (*api.SystemSettings, error) {
	query := `
	INSERT INTO system_settings (id, wildcard_domain, mist_app_name)
	VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		wildcard_domain = excluded.wildcard_domain,
		mist_app_name = excluded.mist_app_name
	`
	if _, err := s.db.ExecContext(ctx, query, nullableString(settings.WildcardDomain), settings.MistAppName); err != nil {
		return nil, err
	}
	return s.GetSystemSettings(ctx)
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*api.ServiceTemplate, error) {
	var tmpl api.ServiceTemplate
	var envVars, volumes string
	err := row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.DisplayName,
		&tmpl.Category,
		&tmpl.Description,
		&tmpl.DockerImage,
		&tmpl.DockerImageVersion,
		&tmpl.DefaultPort,
		&envVars,
		&volumes,
		&tmpl.RecommendedCPU,
		&tmpl.RecommendedMemory,
		&tmpl.IsActive,
		&tmpl.IsFeatured,
		&tmpl.SortOrder,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeTemplateCollections(&tmpl, envVars, volumes); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func encodeTemplateCollections(tmpl *api.ServiceTemplate) (string, string, error) {
	envVars := tmpl.DefaultEnvVars
	if envVars == nil {
		envVars = map[string]string{}
	}
	volumes := tmpl.DefaultVolumes
	if volumes == nil {
		volumes = []string{}
	}

	envJSON, err := json.Marshal(envVars)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode env vars: %w", err)
	}
	volumesJSON, err := json.Marshal(volumes)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode volumes: %w", err)
	}
	return string(envJSON), string(volumesJSON), nil
}

func decodeTemplateCollections(tmpl *api.ServiceTemplate, envVars, volumes string) error {
	if envVars != "" {
		if err := json.Unmarshal([]byte(envVars), &tmpl.DefaultEnvVars); err != nil {
			return fmt.Errorf("failed to decode env vars for %s: %w", tmpl.Name, err)
		}
	}
	if volumes != "" {
		if err := json.Unmarshal([]byte(volumes), &tmpl.DefaultVolumes); err != nil {
			return fmt.Errorf("failed to decode volumes for %s: %w", tmpl.Name, err)
		}
	}
	if len(tmpl.DefaultEnvVars) == 0 {
		tmpl.DefaultEnvVars = nil
	}
	if len(tmpl.DefaultVolumes) == 0 {
		tmpl.DefaultVolumes = nil
	}
	return nil
}

func nullableString(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}
