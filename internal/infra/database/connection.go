package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Driver sqlite puro-Go
)

var accountSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// LeadStorePath deriva o arquivo sqlite de uma conta externa. Uma conta,
// um store, um engine: sem exclusão mútua entre processos.
func LeadStorePath(dataDir, account string) string {
	name := strings.ToLower(accountSanitizer.ReplaceAllString(account, "_"))
	if name == "" {
		return filepath.Join(dataDir, "leads.db")
	}
	return filepath.Join(dataDir, name+"_leads.db")
}

// NewDBConnection abre (ou cria) o store sqlite, aplica o schema e testa
// com Ping.
func NewDBConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// sqlite local: um escritor. Pool mínimo evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migração do lead store falhou: %w", err)
	}

	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			user_id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			full_name TEXT,
			status TEXT NOT NULL DEFAULT 'contacted',
			last_contacted_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversation_turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lead_id TEXT NOT NULL REFERENCES leads(user_id),
			role TEXT NOT NULL,
			sent_at TIMESTAMP NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_lead ON conversation_turns(lead_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
