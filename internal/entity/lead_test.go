package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	l := Lead{Username: "maria_p", FullName: "María Pérez"}
	assert.Equal(t, "María Pérez", l.DisplayName())

	l.FullName = ""
	assert.Equal(t, "maria_p", l.DisplayName())
}

func TestRenderHistoryChronologicalOrder(t *testing.T) {
	now := time.Now()
	turns := []ConversationTurn{
		{Role: TurnRoleAgent, SentAt: now, Body: "Hola María!"},
		{Role: TurnRoleLead, SentAt: now.Add(time.Hour), Body: "Hola, cuánto cuesta?"},
		{Role: TurnRoleAgent, SentAt: now.Add(2 * time.Hour), Body: "La DELTA 2 está en $640."},
	}

	history := RenderHistory(turns)
	assert.Equal(t,
		"ALEJANDRO: Hola María!\nLEAD: Hola, cuánto cuesta?\nALEJANDRO: La DELTA 2 está en $640.\n",
		history,
	)
}

func TestRenderHistoryEmpty(t *testing.T) {
	assert.Equal(t, "", RenderHistory(nil))
}

func TestIsInboundReply(t *testing.T) {
	assert.True(t, IsInboundReply("lead123", "self456"))
	// Mensagem nossa não é resposta.
	assert.False(t, IsInboundReply("self456", "self456"))
	// Sem autor ou sem self id, não arrisca transição.
	assert.False(t, IsInboundReply("", "self456"))
	assert.False(t, IsInboundReply("lead123", ""))
}

func TestLeadInThreadTieBreak(t *testing.T) {
	th := Thread{ParticipantIDs: []string{"a", "b", "c"}}
	pending := map[string]bool{"b": true, "c": true}

	// Só um lead por thread por ciclo: o primeiro participante pendente.
	id, ok := th.LeadInThread(pending)
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	_, ok = th.LeadInThread(map[string]bool{})
	assert.False(t, ok)
}
