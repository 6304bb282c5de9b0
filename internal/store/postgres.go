package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mist/mist/internal/api"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	templatesQuery := `
	CREATE TABLE IF NOT EXISTS service_templates (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		docker_image TEXT NOT NULL,
		docker_image_version TEXT NOT NULL DEFAULT '',
		default_port INTEGER NOT NULL DEFAULT 0,
		default_env_vars JSONB NOT NULL DEFAULT '{}',
		default_volumes JSONB NOT NULL DEFAULT '[]',
		recommended_cpu DOUBLE PRECISION NOT NULL DEFAULT 0,
		recommended_memory INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if _, err := s.pool.Exec(ctx, templatesQuery); err != nil {
		return err
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS system_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		wildcard_domain TEXT,
		mist_app_name TEXT NOT NULL
	);
	`
	if _, err := s.pool.Exec(ctx, settingsQuery); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `INSERT INTO system_settings (id, wildcard_domain, mist_app_name) VALUES (1, NULL, $1) ON CONFLICT (id) DO NOTHING`, DefaultAppName)
	return err
}

const pgTemplateColumns = `id, name, display_name, category, description, docker_image, docker_image_version, default_port, default_env_vars::text, default_volumes::text, recommended_cpu, recommended_memory, is_active, is_featured, sort_order, created_at, updated_at`

func (s *PostgresStore) ListTemplates(ctx context.Context) ([]api.ServiceTemplate, error) {
	query := `SELECT ` + pgTemplateColumns + ` FROM service_templates WHERE is_active ORDER BY sort_order, name`
	rows, err := s.pool.Query(ctx, query)
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

func (s *PostgresStore) GetTemplateByName(ctx context.Context, name string) (*api.ServiceTemplate, error) {
	query := `SELECT ` + pgTemplateColumns + ` FROM service_templates WHERE name = $1`
	tmpl, err := scanTemplate(s.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

func (s *PostgresStore) UpsertTemplate(ctx context.Context, tmpl *api.ServiceTemplate) error {
	envVars, volumes, err := encodeTemplateCollections(tmpl)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
	INSERT INTO service_templates (name, display_name, category, description, docker_image, docker_image_version, default_port, default_env_vars, default_volumes, recommended_cpu, recommended_memory, is_active, is_featured, sort_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10, $11, $12, $13, $14, $15, $15)
	ON CONFLICT (name) DO UPDATE SET
		display_name = EXCLUDED.display_name,
		category = EXCLUDED.category,
		description = EXCLUDED.description,
		docker_image = EXCLUDED.docker_image,
		docker_image_version = EXCLUDED.docker_image_version,
		default_port = EXCLUDED.default_port,
		default_env_vars = EXCLUDED.default_env_vars,
		default_volumes = EXCLUDED.default_volumes,
		recommended_cpu = EXCLUDED.recommended_cpu,
		recommended_memory = EXCLUDED.recommended_memory,
		is_active = EXCLUDED.is_active,
		is_featured = EXCLUDED.is_featured,
		sort_order = EXCLUDED.sort_order,
		updated_at = EXCLUDED.updated_at
	RETURNING id, created_at, updated_at
	`
	return s.pool.QueryRow(
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
	).Scan(&tmpl.ID, &tmpl.CreatedAt, &tmpl.UpdatedAt)
}

func (s *PostgresStore) GetSystemSettings(ctx context.Context) (*api.SystemSettings, error) {
	row := s.pool.QueryRow(ctx, `SELECT wildcard_domain, mist_app_name FROM system_settings WHERE id = 1`)

	var wildcard *string
	var settings api.SystemSettings
	if err := row.Scan(&wildcard, &settings.MistAppName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	if wildcard != nil && *wildcard != "" {
		settings.WildcardDomain = wildcard
	}
	return &settings, nil
}

func (s *PostgresStore) UpdateSystemSettings(ctx context.Context, settings api.SystemSettings) (*api.SystemSettings, error) {
	query := `
	INSERT INTO system_settings (id, wildcard_domain, mist_app_name)
	VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET
		wildcard_domain = EXCLUDED.wildcard_domain,
		mist_app_name = EXCLUDED.mist_app_name
	RETURNING wildcard_domain, mist_app_name
	`
	var wildcard *string
	updated := &api.SystemSettings{}
	if err := s.pool.QueryRow(ctx, query, nullableString(settings.WildcardDomain), settings.MistAppName).Scan(&wildcard, &updated.MistAppName); err != nil {
		return nil, err
	}
	if wildcard != nil && *wildcard != "" {
		updated.WildcardDomain = wildcard
	}
	return updated, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
