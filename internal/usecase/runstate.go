package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type AgentState string

const (
	StateIdle          AgentState = "idle"
	StateStarting      AgentState = "starting"
	StateRunning       AgentState = "running"
	StateStopRequested AgentState = "stop_requested"
	StateStopped       AgentState = "stopped"
)

// AgentHandle guarda o estado de execução do agente com transições
// protegidas por mutex. Substitui a flag global compartilhada do design
// antigo. Um handle por processo: no máximo um engine rodando.
type AgentHandle struct {
	mu      sync.Mutex
	state   AgentState
	runID   string
	account string
	cancel  context.CancelFunc
}

type AgentStatus struct {
	Running bool   `json:"running"`
	State   string `json:"state"`
	Account string `json:"account,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}

func NewAgentHandle() *AgentHandle {
	return &AgentHandle{state: StateIdle}
}

// BeginStart reserva o handle para um novo run. Conflito se já houver um
// run ativo (starting/running/stop_requested).
func (h *AgentHandle) BeginStart(account string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateIdle && h.state != StateStopped {
		return "", &DomainError{
			Code:    "AGENT_ALREADY_RUNNING",
			Message: "an agent run is already active",
		}
	}

	h.state = StateStarting
	h.runID = uuid.New().String()
	h.account = account
	h.cancel = nil
	return h.runID, nil
}

// MarkRunning registra o cancel do contexto do run e entra em running.
func (h *AgentHandle) MarkRunning(cancel context.CancelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = StateRunning
	h.cancel = cancel
}

// RequestStop cancela o contexto do run. A parada é cooperativa: o engine
// sai no próximo limite de fase ou sub-intervalo de sleep.
func (h *AgentHandle) RequestStop() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateStarting && h.state != StateRunning {
		return false
	}

	h.state = StateStopRequested
	if h.cancel != nil {
		h.cancel()
	}
	return true
}

// MarkStopped fecha o ciclo de vida do run (terminou ou falhou no login).
func (h *AgentHandle) MarkStopped() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = StateStopped
	h.cancel = nil
}

func (h *AgentHandle) Snapshot() AgentStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	running := h.state == StateStarting || h.state == StateRunning || h.state == StateStopRequested
	st := AgentStatus{
		Running: running,
		State:   string(h.state),
	}
	if running {
		st.Account = h.account
		st.RunID = h.runID
	}
	return st
}
