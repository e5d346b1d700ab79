package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/insta-setter/internal/entity"
)

// Timestamps gravados em UTC RFC3339; DATE(...,'localtime') converte na
// leitura para a contagem diária.
const timeLayout = time.RFC3339

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM leads WHERE user_id = ?`, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO leads (user_id, username, full_name, status, last_contacted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		lead.UserID,
		lead.Username,
		lead.FullName,
		lead.Status,
		lead.LastContactedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		// PK violada = já contatado. O engine checa Exists antes, mas a
		// constraint é a garantia final de contato único.
		if isUniqueViolation(err) {
			return entity.ErrLeadAlreadyExists
		}
		return err
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, userID string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT user_id, username, full_name, status, last_contacted_at
		 FROM leads WHERE user_id = ?`, userID)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) ListByStatus(ctx context.Context, status string) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_id, username, full_name, status, last_contacted_at
		 FROM leads WHERE status = ? ORDER BY last_contacted_at`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// MarkReplied promove contacted -> replied e atualiza last_contacted_at.
// O WHERE garante que um lead já replied nunca regride.
func (r *LeadRepository) MarkReplied(ctx context.Context, userID string, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = ?, last_contacted_at = ?
		 WHERE user_id = ? AND status = ?`,
		entity.StatusReplied,
		at.UTC().Format(timeLayout),
		userID,
		entity.StatusContacted,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) AppendTurn(ctx context.Context, turn *entity.ConversationTurn) error {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO conversation_turns (lead_id, role, sent_at, body)
		 VALUES (?, ?, ?, ?)`,
		turn.LeadID,
		turn.Role,
		turn.SentAt.UTC().Format(timeLayout),
		turn.Body,
	)
	if err != nil {
		return err
	}
	turn.ID, err = result.LastInsertId()
	return err
}

// History devolve os turnos em ordem de inserção (cronológica).
func (r *LeadRepository) History(ctx context.Context, userID string) ([]entity.ConversationTurn, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, lead_id, role, sent_at, body
		 FROM conversation_turns WHERE lead_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]entity.ConversationTurn, 0)
	for rows.Next() {
		var t entity.ConversationTurn
		var sentAt string
		if err := rows.Scan(&t.ID, &t.LeadID, &t.Role, &sentAt, &t.Body); err != nil {
			return nil, err
		}
		t.SentAt, err = time.Parse(timeLayout, sentAt)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// CountContactedToday conta leads cujo last_contacted_at cai na data local
// corrente. É a definição da cota diária: respostas detectadas hoje também
// contam, porque atualizam last_contacted_at.
func (r *LeadRepository) CountContactedToday(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads
		 WHERE DATE(last_contacted_at, 'localtime') = DATE('now', 'localtime')`,
	).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountTotal(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = ?`, status,
	).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var fullName sql.NullString
	var lastContactedAt string

	if err := row.Scan(&lead.UserID, &lead.Username, &fullName, &lead.Status, &lastContactedAt); err != nil {
		return nil, err
	}
	lead.FullName = fullName.String

	var err error
	lead.LastContactedAt, err = time.Parse(timeLayout, lastContactedAt)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite devolve o erro como texto; SQLITE_CONSTRAINT
	// chega como "constraint failed: UNIQUE constraint failed: ...".
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
