package crowd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS crowd_validations (
	train_number TEXT PRIMARY KEY,
	doc          JSONB NOT NULL
)`

// PostgresStore persists each train's validation bucket as one JSONB row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to Postgres via the pgx stdlib driver and
// ensures the schema exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring crowd_validations table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Load() (map[string]*TrainValidations, error) {
	rows, err := p.db.Query(`SELECT train_number, doc FROM crowd_validations`)
	if err != nil {
		return nil, fmt.Errorf("loading crowd_validations: %w", err)
	}
	defer rows.Close()

	trains := map[string]*TrainValidations{}
	for rows.Next() {
		var train string
		var doc []byte
		if err := rows.Scan(&train, &doc); err != nil {
			return nil, err
		}
		tv := &TrainValidations{}
		if err := json.Unmarshal(doc, tv); err != nil {
			return nil, fmt.Errorf("parsing doc for train %s: %w", train, err)
		}
		trains[train] = tv
	}
	return trains, rows.Err()
}

func (p *PostgresStore) Save(trains map[string]*TrainValidations) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM crowd_validations`); err != nil {
		return err
	}
	for train, tv := range trains {
		doc, err := json.Marshal(tv)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO crowd_validations (train_number, doc) VALUES ($1, $2)`, train, doc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (p *PostgresStore) Close() error { return p.db.Close() }
