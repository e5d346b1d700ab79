package usecase

import (
	"context"
	"errors"
	"fmt"
)

// ErrGeneratorUnavailable: nenhuma API key configurada. O caller pula o
// envio da resposta sem falhar o ciclo.
var ErrGeneratorUnavailable = errors.New("reply generator not configured")

// ReplyComposer monta o prompt (persona + contexto + catálogo + metodologia
// + histórico da conversa) e delega ao backend de geração. A saída volta
// sem validação: sem cap de tamanho, sem filtro, sem checagem de preço.
type ReplyComposer struct {
	Generator ReplyGenerator
}

func NewReplyComposer(generator ReplyGenerator) *ReplyComposer {
	return &ReplyComposer{Generator: generator}
}

func (c *ReplyComposer) Compose(ctx context.Context, conversationHistory string) (string, error) {
	if c.Generator == nil {
		return "", ErrGeneratorUnavailable
	}

	prompt := fmt.Sprintf(
		"%s\n\n**Contexto de Venezuela:**\n%s\n\n**Base de Conocimiento de Productos:**\n%s\n\n**Metodología de Ventas:**\n%s\n\n**Historial de la Conversación:**\n%s\n\n%s",
		systemPrompt,
		venezuelaContext,
		ecoflowKnowledgeBase,
		salesMethodology,
		conversationHistory,
		replyTaskInstruction,
	)

	reply, err := c.Generator.GenerateReply(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("reply generation failed: %w", err)
	}
	return reply, nil
}
