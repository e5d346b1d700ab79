package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/insta-setter/internal/usecase"
)

// stubRunner bloqueia até o contexto do run ser cancelado, como o engine.
type stubRunner struct{}

func (stubRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type stubFactory struct {
	buildErr error
}

func (f *stubFactory) Build(input usecase.StartAgentInput) (EngineRunner, func(), error) {
	if f.buildErr != nil {
		return nil, nil, f.buildErr
	}
	return stubRunner{}, func() {}, nil
}

func startBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(usecase.StartAgentInput{
		Username:      "alejandro.rojas",
		Password:      "secret",
		TargetAccount: "ecoflowpower_ve",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestStartLaunchesAgent(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	rec := httptest.NewRecorder()
	h.HandleStart(rec, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var out usecase.StartAgentOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.NotEmpty(t, out.RunID)

	status := httptest.NewRecorder()
	h.HandleStatus(status, httptest.NewRequest(http.MethodGet, "/status", nil))

	var st usecase.AgentStatus
	require.NoError(t, json.NewDecoder(status.Body).Decode(&st))
	assert.True(t, st.Running)
	assert.Equal(t, "ecoflowpower_ve", st.Account)
}

func TestStartConflictsWhenAlreadyRunning(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	first := httptest.NewRecorder()
	h.HandleStart(first, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))
	require.Equal(t, http.StatusAccepted, first.Code)

	second := httptest.NewRecorder()
	h.HandleStart(second, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestStartRejectsInvalidInput(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	body, _ := json.Marshal(usecase.StartAgentInput{Username: "alejandro.rojas"})
	rec := httptest.NewRecorder()
	h.HandleStart(rec, httptest.NewRequest(http.MethodPost, "/start", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartRejectsInvalidJSON(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	rec := httptest.NewRecorder()
	h.HandleStart(rec, httptest.NewRequest(http.MethodPost, "/start", bytes.NewBufferString("{nope")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartReleasesHandleOnBuildFailure(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{buildErr: errors.New("store locked")})

	rec := httptest.NewRecorder()
	h.HandleStart(rec, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// O handle volta a aceitar um start depois da falha.
	retry := httptest.NewRecorder()
	h2 := &stubFactory{}
	h.Factory = h2
	h.HandleStart(retry, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))
	assert.Equal(t, http.StatusAccepted, retry.Code)
}

func TestStopFlipsStateToStopRequested(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	start := httptest.NewRecorder()
	h.HandleStart(start, httptest.NewRequest(http.MethodPost, "/start", startBody(t)))
	require.Equal(t, http.StatusAccepted, start.Code)

	stop := httptest.NewRecorder()
	h.HandleStop(stop, httptest.NewRequest(http.MethodPost, "/stop", nil))
	assert.Equal(t, http.StatusAccepted, stop.Code)

	// O runner sai quando o contexto morre; o handle chega a stopped.
	assert.Eventually(t, func() bool {
		return h.Handle.Snapshot().State == string(usecase.StateStopped)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStopWithoutRunningAgent(t *testing.T) {
	h := NewAgentHandler(usecase.NewAgentHandle(), &stubFactory{})

	rec := httptest.NewRecorder()
	h.HandleStop(rec, httptest.NewRequest(http.MethodPost, "/stop", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
