package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"toposcope/internal/domain"
	"toposcope/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.LayoutRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layouts (
		name TEXT PRIMARY KEY,
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// List returns all saved layout names in alphabetical order
func (r *Repository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan layout name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layouts: %w", err)
	}
	return names, nil
}

// Get retrieves a single layout by name
func (r *Repository) Get(ctx context.Context, name string) (*domain.Layout, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM layouts WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query layout: %w", err)
	}

	layout := domain.NewLayout()
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout data: %w", err)
	}
	if layout.Nodes == nil {
		layout.Nodes = make(map[string]domain.LayoutNode)
	}
	return layout, nil
}

// Put inserts or overwrites a layout
func (r *Repository) Put(ctx context.Context, name string, l *domain.Layout) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO layouts (name, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, name, data)

	if err != nil {
		return fmt.Errorf("failed to upsert layout: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
