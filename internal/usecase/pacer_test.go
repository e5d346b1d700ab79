package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerDelayStaysInBounds(t *testing.T) {
	p := NewSendPacer()
	for i := 0; i < 100; i++ {
		d := p.Delay()
		assert.GreaterOrEqual(t, d, 90*time.Second)
		assert.LessOrEqual(t, d, 120*time.Second)
	}
}

func TestPacerDegenerateRange(t *testing.T) {
	p := &SendPacer{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, p.Delay())
}

func TestPacerWaitRespectsCancellation(t *testing.T) {
	p := &SendPacer{Min: time.Minute, Max: 2 * time.Minute, sleep: SleepCtx}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepCtxCompletes(t *testing.T) {
	err := SleepCtx(context.Background(), 5*time.Millisecond)
	assert.NoError(t, err)
}
