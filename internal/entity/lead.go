package entity

import (
	"errors"
	"strings"
	"time"
)

// Status de um lead. Fluxo forward-only: contacted -> replied.
// qualified/transferred/ignored são terminais reservados; nenhum fluxo
// automático escreve neles hoje.
const (
	StatusContacted   = "contacted"
	StatusReplied     = "replied"
	StatusQualified   = "qualified"
	StatusTransferred = "transferred"
	StatusIgnored     = "ignored"
)

const (
	TurnRoleLead  = "lead"
	TurnRoleAgent = "agent"
)

var (
	ErrLeadAlreadyExists = errors.New("lead already contacted")
	ErrLeadNotFound      = errors.New("lead not found")
)

// Lead: uma linha por usuário externo contatado.
type Lead struct {
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name,omitempty"`
	Status          string    `json:"status"`
	LastContactedAt time.Time `json:"last_contacted_at"`
}

// ConversationTurn é um turno discreto do histórico. Substitui a string
// crua concatenada do design antigo: consulta estruturada e crescimento
// controlável.
type ConversationTurn struct {
	ID     int64     `json:"id"`
	LeadID string    `json:"lead_id"`
	Role   string    `json:"role"` // lead | agent
	SentAt time.Time `json:"sent_at"`
	Body   string    `json:"body"`
}

// DisplayName escolhe o nome usado nos templates de abordagem.
func (l *Lead) DisplayName() string {
	if l.FullName != "" {
		return l.FullName
	}
	return l.Username
}

// RenderHistory monta o texto consumido pelo prompt do composer, em ordem
// cronológica, uma linha por turno.
func RenderHistory(turns []ConversationTurn) string {
	var b strings.Builder
	for _, t := range turns {
		switch t.Role {
		case TurnRoleLead:
			b.WriteString("LEAD: ")
		case TurnRoleAgent:
			b.WriteString("ALEJANDRO: ")
		default:
			b.WriteString(strings.ToUpper(t.Role) + ": ")
		}
		b.WriteString(t.Body)
		b.WriteString("\n")
	}
	return b.String()
}

// IsInboundReply decide se a última mensagem de um thread conta como
// resposta do lead: o autor não é a própria conta logada.
func IsInboundReply(lastAuthorID, selfUserID string) bool {
	if lastAuthorID == "" || selfUserID == "" {
		return false
	}
	return lastAuthorID != selfUserID
}
