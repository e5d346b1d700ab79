package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/insta-setter/internal/entity"
	"github.com/xavierca1/insta-setter/internal/infra/queue"
)

// LeadRepositoryInterface é o contrato do lead store (um arquivo sqlite
// por conta externa). O engine é o único escritor de um store.
type LeadRepositoryInterface interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, lead *entity.Lead) error
	ListByStatus(ctx context.Context, status string) ([]entity.Lead, error)
	MarkReplied(ctx context.Context, userID string, at time.Time) error
	AppendTurn(ctx context.Context, turn *entity.ConversationTurn) error
	History(ctx context.Context, userID string) ([]entity.ConversationTurn, error)
	CountContactedToday(ctx context.Context) (int, error)
}

// SocialGateway encapsula a plataforma de mensagens (Instagram).
// Login é fatal quando falha; as demais operações são best-effort.
type SocialGateway interface {
	Login(ctx context.Context) error
	SelfUserID() string
	ListFollowers(ctx context.Context, account string, limit int) ([]entity.FollowerProfile, error)
	SendDirectMessage(ctx context.Context, userID, text string) error
	ListRecentThreads(ctx context.Context, limit int) ([]entity.Thread, error)
}

// ReplyGenerator é o backend de geração de texto (Gemini). Falha de forma
// opaca em erro de cota/rede.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// LeadEventPublisher propaga eventos de ciclo de vida do lead para o CRM
// via fila. Opcional: nil desliga a publicação.
type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

// ReplyAlertService avisa o time de vendas quando um lead responde
// (gancho para o takeover humano). Opcional.
type ReplyAlertService interface {
	SendReplyAlert(to, account, username, excerpt string) error
}
