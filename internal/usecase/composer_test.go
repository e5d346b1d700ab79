package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestComposeBuildsFullPrompt(t *testing.T) {
	ctx := context.Background()
	gen := new(MockReplyGenerator)

	var capturedPrompt string
	gen.On("GenerateReply", ctx, mock.Anything).Run(func(args mock.Arguments) {
		capturedPrompt = args.String(1)
	}).Return("respuesta", nil)

	c := NewReplyComposer(gen)
	history := "LEAD: Hola, necesito energía para mi nevera\n"
	reply, err := c.Compose(ctx, history)

	assert.NoError(t, err)
	assert.Equal(t, "respuesta", reply)

	// O prompt leva persona, contexto, catálogo, metodologia, histórico
	// e a instrução final, nessa ordem de concatenação.
	assert.Contains(t, capturedPrompt, "Alejandro Rojas")
	assert.Contains(t, capturedPrompt, "REALIDAD ENERGÉTICA VENEZOLANA")
	assert.Contains(t, capturedPrompt, "DELTA 2")
	assert.Contains(t, capturedPrompt, "PROCESO DE DESCUBRIMIENTO")
	assert.Contains(t, capturedPrompt, history)
	assert.Contains(t, capturedPrompt, "siempre haz una pregunta abierta")
}

func TestComposeReturnsOutputUnvalidated(t *testing.T) {
	ctx := context.Background()
	gen := new(MockReplyGenerator)
	gen.On("GenerateReply", ctx, mock.Anything).Return("   qualquer coisa, sem filtro   ", nil)

	c := NewReplyComposer(gen)
	reply, err := c.Compose(ctx, "")

	assert.NoError(t, err)
	assert.Equal(t, "   qualquer coisa, sem filtro   ", reply)
}

func TestComposeWithoutGenerator(t *testing.T) {
	c := NewReplyComposer(nil)
	_, err := c.Compose(context.Background(), "LEAD: hola\n")
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestComposeWrapsGeneratorError(t *testing.T) {
	ctx := context.Background()
	gen := new(MockReplyGenerator)
	gen.On("GenerateReply", ctx, mock.Anything).Return("", errors.New("quota exceeded"))

	c := NewReplyComposer(gen)
	_, err := c.Compose(ctx, "")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGeneratorUnavailable)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRenderInitialMessageTemplates(t *testing.T) {
	for _, tmpl := range initialMessageTemplates {
		msg := RenderInitialMessage(tmpl, "María Pérez", "ecoflowpower_ve")
		assert.Contains(t, msg, "María Pérez")
		assert.Contains(t, msg, "@ecoflowpower_ve")
		assert.NotContains(t, msg, "{full_name}")
		assert.NotContains(t, msg, "{target_account}")
	}
}
