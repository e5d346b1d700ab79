package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/xavierca1/insta-setter/internal/entity"
	"github.com/xavierca1/insta-setter/internal/infra/http/middleware"
	"github.com/xavierca1/insta-setter/internal/infra/queue"
)

const (
	// Janela de threads recentes examinada por ciclo.
	defaultThreadWindow = 50
	// Pausa entre ciclos quando a cota diária já estourou.
	quotaReachedWait = 5 * time.Minute
)

type EngineConfig struct {
	TargetAccount string
	DailyLimit    int
	CheckInterval time.Duration
	ThreadWindow  int
	AlertEmail    string // destino dos avisos de resposta (opcional)
}

// Engine é o loop de abordagem/resposta: a cada ciclo checa respostas,
// recalcula a cota do dia e, se houver saldo, aborda novos seguidores.
// Worker único: as fases rodam estritamente em sequência.
type Engine struct {
	cfg      EngineConfig
	repo     LeadRepositoryInterface
	gateway  SocialGateway
	composer *ReplyComposer
	events   LeadEventPublisher // opcional
	mailer   ReplyAlertService  // opcional

	pacer *SendPacer
	sleep func(ctx context.Context, d time.Duration) error
	randn func(n int) int
	now   func() time.Time
}

func NewEngine(
	cfg EngineConfig,
	repo LeadRepositoryInterface,
	gateway SocialGateway,
	composer *ReplyComposer,
	events LeadEventPublisher,
	mailer ReplyAlertService,
) *Engine {
	if cfg.ThreadWindow <= 0 {
		cfg.ThreadWindow = defaultThreadWindow
	}
	return &Engine{
		cfg:      cfg,
		repo:     repo,
		gateway:  gateway,
		composer: composer,
		events:   events,
		mailer:   mailer,
		pacer:    NewSendPacer(),
		sleep:    SleepCtx,
		randn:    rand.Intn,
		now:      time.Now,
	}
}

// Run roda indefinidamente até o contexto ser cancelado. Falha de login
// (incluindo 2FA sem código) é fatal e aborta antes do primeiro ciclo.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.gateway.Login(ctx); err != nil {
		return &TechnicalError{
			Code:    "LOGIN_FAILED",
			Message: "instagram login failed: " + err.Error(),
		}
	}
	log.Printf("🤖 Engine iniciado (target=@%s limit=%d interval=%s)",
		e.cfg.TargetAccount, e.cfg.DailyLimit, e.cfg.CheckInterval)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sentToday := e.RunCycle(ctx)
		middleware.RecordEngineCycle()

		wait := e.cfg.CheckInterval
		if sentToday >= e.cfg.DailyLimit {
			log.Printf("⛔ Limite diário atingido (%d/%d). Só monitorando respostas.", sentToday, e.cfg.DailyLimit)
			wait = quotaReachedWait
		}
		log.Printf("🕒 Ciclo encerrado. Aguardando %s...", wait)
		if err := e.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// RunCycle executa um ciclo completo e devolve o total de contatos do dia
// ao final da fase de abordagem.
func (e *Engine) RunCycle(ctx context.Context) int {
	log.Println("🔁 Novo ciclo: checando respostas primeiro.")
	e.checkReplies(ctx)

	sentToday, err := e.repo.CountContactedToday(ctx)
	if err != nil {
		log.Printf("❌ Erro ao contar envios do dia: %v", err)
		return e.cfg.DailyLimit // sem contagem confiável, não aborda
	}
	log.Printf("📊 Enviados hoje: %d. Limite: %d.", sentToday, e.cfg.DailyLimit)

	if sentToday < e.cfg.DailyLimit {
		sentToday = e.runOutreach(ctx, sentToday)
	}
	return sentToday
}

// checkReplies cruza os threads recentes com os leads aguardando resposta.
// Erros por item são logados e não abortam o ciclo; erro no fetch de
// threads encerra só esta fase.
func (e *Engine) checkReplies(ctx context.Context) {
	leads, err := e.repo.ListByStatus(ctx, entity.StatusContacted)
	if err != nil {
		log.Printf("❌ Erro ao listar leads pendentes: %v", err)
		return
	}
	if len(leads) == 0 {
		log.Println("📭 Nenhum lead pendente de resposta.")
		return
	}

	pending := make(map[string]bool, len(leads))
	for _, l := range leads {
		pending[l.UserID] = true
	}

	threads, err := e.gateway.ListRecentThreads(ctx, e.cfg.ThreadWindow)
	if err != nil {
		log.Printf("❌ Erro ao buscar threads recentes: %v", err)
		return
	}

	for i := range threads {
		if ctx.Err() != nil {
			return
		}
		th := &threads[i]

		leadID, ok := th.LeadInThread(pending)
		if !ok {
			continue
		}
		// Última mensagem nossa = ainda sem resposta. Não regredir.
		if !entity.IsInboundReply(th.LastMessage.AuthorID, e.gateway.SelfUserID()) {
			continue
		}

		if err := e.processReply(ctx, leadID, th.LastMessage.Text); err != nil {
			log.Printf("⚠️ Falha ao processar resposta do lead %s: %v", leadID, err)
			continue
		}
		delete(pending, leadID)
	}
}

// processReply promove o lead para replied, registra o turno recebido e
// tenta gerar+enviar o follow-up.
func (e *Engine) processReply(ctx context.Context, leadID, text string) error {
	now := e.now()
	if err := e.repo.MarkReplied(ctx, leadID, now); err != nil {
		return fmt.Errorf("mark replied: %w", err)
	}
	if err := e.repo.AppendTurn(ctx, &entity.ConversationTurn{
		LeadID: leadID,
		Role:   entity.TurnRoleLead,
		SentAt: now,
		Body:   text,
	}); err != nil {
		return fmt.Errorf("append lead turn: %w", err)
	}
	log.Printf("💬 Resposta detectada do lead %s.", leadID)
	middleware.RecordReplyDetected()

	e.publishEvent(ctx, leadID, queue.LeadEventReplied)
	e.alertSalesTeam(leadID, text)

	turns, err := e.repo.History(ctx, leadID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	reply, err := e.composer.Compose(ctx, entity.RenderHistory(turns))
	if errors.Is(err, ErrGeneratorUnavailable) {
		log.Println("⚠️ Gerador de respostas desligado (sem API key). Pulando follow-up.")
		return nil
	}
	if err != nil {
		middleware.RecordIntegrationError("gemini")
		return err
	}

	if err := e.gateway.SendDirectMessage(ctx, leadID, reply); err != nil {
		middleware.RecordIntegrationError("instagram")
		return fmt.Errorf("send follow-up: %w", err)
	}
	if err := e.repo.AppendTurn(ctx, &entity.ConversationTurn{
		LeadID: leadID,
		Role:   entity.TurnRoleAgent,
		SentAt: e.now(),
		Body:   reply,
	}); err != nil {
		return fmt.Errorf("append agent turn: %w", err)
	}
	log.Printf("✅ Follow-up enviado para o lead %s.", leadID)
	return nil
}

// runOutreach aborda candidatos até bater a cota do dia. A contagem é
// relida do store antes de cada envio (re-checagem otimista, não
// transacional: um engine por store é premissa dura de operação).
func (e *Engine) runOutreach(ctx context.Context, sentToday int) int {
	followers, err := e.gateway.ListFollowers(ctx, e.cfg.TargetAccount, e.cfg.DailyLimit*2)
	if err != nil {
		log.Printf("❌ Erro ao buscar seguidores de @%s: %v", e.cfg.TargetAccount, err)
		return sentToday
	}
	if len(followers) == 0 {
		log.Println("⚠️ Nenhum seguidor disponível para abordagem.")
		return sentToday
	}

	for i := range followers {
		if ctx.Err() != nil {
			return sentToday
		}

		count, err := e.repo.CountContactedToday(ctx)
		if err != nil {
			log.Printf("❌ Erro ao recontar envios do dia: %v", err)
			return sentToday
		}
		sentToday = count
		if sentToday >= e.cfg.DailyLimit {
			log.Println("⛔ Cota diária atingida durante a fase de abordagem.")
			return sentToday
		}

		sent, err := e.sendInitialMessage(ctx, &followers[i])
		if err != nil {
			log.Printf("⚠️ Falha ao abordar @%s: %v", followers[i].Username, err)
			continue
		}
		if !sent {
			continue
		}

		sentToday++
		middleware.RecordOutreachSent()
		if err := e.pacer.Wait(ctx); err != nil {
			return sentToday
		}
	}
	return sentToday
}

// sendInitialMessage envia o primeiro contato e cria a linha do lead.
// Lead já existente é no-op idempotente (false, nil), não erro.
func (e *Engine) sendInitialMessage(ctx context.Context, f *entity.FollowerProfile) (bool, error) {
	exists, err := e.repo.Exists(ctx, f.UserID)
	if err != nil {
		return false, fmt.Errorf("lookup lead: %w", err)
	}
	if exists {
		log.Printf("↩️ @%s já foi contatado. Pulando.", f.Username)
		return false, nil
	}

	lead := &entity.Lead{
		UserID:          f.UserID,
		Username:        f.Username,
		FullName:        f.FullName,
		Status:          entity.StatusContacted,
		LastContactedAt: e.now(),
	}

	template := initialMessageTemplates[e.randn(len(initialMessageTemplates))]
	message := RenderInitialMessage(template, lead.DisplayName(), e.cfg.TargetAccount)

	if err := e.gateway.SendDirectMessage(ctx, f.UserID, message); err != nil {
		middleware.RecordIntegrationError("instagram")
		return false, fmt.Errorf("send initial message: %w", err)
	}
	if err := e.repo.Create(ctx, lead); err != nil {
		// Mensagem saiu mas a linha não foi gravada: o lead pode receber
		// um segundo contato no próximo ciclo.
		return false, fmt.Errorf("persist lead: %w", err)
	}
	if err := e.repo.AppendTurn(ctx, &entity.ConversationTurn{
		LeadID: f.UserID,
		Role:   entity.TurnRoleAgent,
		SentAt: lead.LastContactedAt,
		Body:   message,
	}); err != nil {
		log.Printf("⚠️ Falha ao registrar turno inicial de @%s: %v", f.Username, err)
	}

	e.publishEvent(ctx, f.UserID, queue.LeadEventContacted)
	log.Printf("✅ Primeira mensagem enviada para @%s.", f.Username)
	return true, nil
}

func (e *Engine) publishEvent(ctx context.Context, userID, event string) {
	if e.events == nil {
		return
	}
	payload := queue.LeadEventPayload{
		Account: e.cfg.TargetAccount,
		UserID:  userID,
		Event:   event,
		At:      e.now(),
	}
	if err := e.events.PublishLeadEvent(ctx, payload); err != nil {
		middleware.RecordIntegrationError("rabbitmq")
		log.Printf("⚠️ Falha ao publicar evento %s do lead %s: %v", event, userID, err)
	}
}

func (e *Engine) alertSalesTeam(leadID, excerpt string) {
	if e.mailer == nil || e.cfg.AlertEmail == "" {
		return
	}
	if err := e.mailer.SendReplyAlert(e.cfg.AlertEmail, e.cfg.TargetAccount, leadID, excerpt); err != nil {
		middleware.RecordIntegrationError("smtp")
		log.Printf("⚠️ Falha ao enviar alerta de resposta: %v", err)
	}
}
