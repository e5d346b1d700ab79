package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/insta-setter/internal/usecase"
)

// EngineRunner é o que o handler precisa saber de um engine: rodar até o
// contexto morrer.
type EngineRunner interface {
	Run(ctx context.Context) error
}

// EngineFactory monta um engine a partir das credenciais do request
// (store da conta, gateway, composer). O cleanup fecha o que a factory
// abriu (handle do sqlite etc).
type EngineFactory interface {
	Build(input usecase.StartAgentInput) (EngineRunner, func(), error)
}

type AgentHandler struct {
	Handle  *usecase.AgentHandle
	Factory EngineFactory
}

func NewAgentHandler(handle *usecase.AgentHandle, factory EngineFactory) *AgentHandler {
	return &AgentHandler{Handle: handle, Factory: factory}
}

type errorResponse struct {
	Msg    string   `json:"msg"`
	Fields []string `json:"fields,omitempty"`
}

func (h *AgentHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var input usecase.StartAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Msg: "invalid JSON"})
		return
	}

	input = usecase.ApplyStartDefaults(input)
	if validationErrors := usecase.ValidateStartAgentInput(input); len(validationErrors) > 0 {
		resp := errorResponse{Msg: "validation failed"}
		for _, e := range validationErrors {
			resp.Fields = append(resp.Fields, e.Error())
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	runID, err := h.Handle.BeginStart(input.TargetAccount)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusConflict, errorResponse{Msg: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: err.Error()})
		return
	}

	engine, cleanup, err := h.Factory.Build(input)
	if err != nil {
		h.Handle.MarkStopped()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: "failed to start agent: " + err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.Handle.MarkRunning(cancel)

	go func() {
		defer cleanup()
		defer h.Handle.MarkStopped()
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("❌ Engine encerrou com erro: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, usecase.StartAgentOutput{
		RunID:  runID,
		Status: "starting",
		Msg:    "agent launched in background",
	})
}

// HandleStop só sinaliza: a parada é cooperativa, um sleep ou chamada de
// rede em andamento termina antes do loop sair.
func (h *AgentHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	if !h.Handle.RequestStop() {
		writeJSON(w, http.StatusConflict, errorResponse{Msg: "no agent running"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": string(usecase.StateStopRequested)})
}

func (h *AgentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Handle.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
