package usecase

import (
	"context"
	"math/rand"
	"time"
)

// Espaçamento mínimo entre envios. Controle anti-bloqueio da plataforma:
// não encurtar.
const (
	minSendDelay = 90 * time.Second
	maxSendDelay = 120 * time.Second
)

// SendPacer impõe um intervalo aleatório uniforme [Min,Max] entre envios
// consecutivos. Abstração explícita (em vez de sleeps inline) para ser
// testável e ajustável.
type SendPacer struct {
	Min   time.Duration
	Max   time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSendPacer() *SendPacer {
	return &SendPacer{
		Min:   minSendDelay,
		Max:   maxSendDelay,
		sleep: SleepCtx,
	}
}

// Delay sorteia a próxima pausa, uniforme em [Min,Max].
func (p *SendPacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rand.Int63n(int64(p.Max-p.Min)))
}

// Wait bloqueia pela pausa sorteada, respeitando cancelamento.
func (p *SendPacer) Wait(ctx context.Context) error {
	return p.sleep(ctx, p.Delay())
}

// SleepCtx dorme d ou retorna cedo com ctx.Err() se o contexto for
// cancelado no meio.
func SleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
