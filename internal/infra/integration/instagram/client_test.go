package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginTwoFactorWithoutCodeIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/accounts/login/" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":"fail","two_factor_required":true,"two_factor_info":{"two_factor_identifier":"abc"}}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient("alejandro.rojas", "secret", "", t.TempDir())
	c.baseURL = server.URL

	err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrTwoFactorRequired)
}

func TestLoginPersistsAndReusesSession(t *testing.T) {
	sessionDir := t.TempDir()
	loginCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/login/":
			loginCalls++
			w.Write([]byte(`{"status":"ok","token":"tok123","logged_in_user":{"pk_id":"99","username":"alejandro.rojas"}}`))
		case "/accounts/current_user/":
			w.Write([]byte(`{"status":"ok","user":{"pk_id":"99","username":"alejandro.rojas"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewClient("alejandro.rojas", "secret", "", sessionDir)
	c.baseURL = server.URL
	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, "99", c.SelfUserID())

	sessionFile := filepath.Join(sessionDir, "alejandro.rojas_agent_session.json")
	_, err := os.Stat(sessionFile)
	require.NoError(t, err)

	// Segundo cliente: reusa a sessão salva sem novo login de credenciais.
	c2 := NewClient("alejandro.rojas", "secret", "", sessionDir)
	c2.baseURL = server.URL
	require.NoError(t, c2.Login(context.Background()))
	assert.Equal(t, "99", c2.SelfUserID())
	assert.Equal(t, 1, loginCalls)
}

func TestListRecentThreadsMapsInbox(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/direct_v2/inbox/", r.URL.Path)
		w.Write([]byte(`{"status":"ok","inbox":{"threads":[
			{"thread_id":"t1","users":[{"pk_id":"lead1"}],"items":[{"user_id":"lead1","text":"Hola!"}]},
			{"thread_id":"t2","users":[{"pk_id":"lead2"}],"items":[]}
		]}}`))
	}))
	defer server.Close()

	c := NewClient("alejandro.rojas", "secret", "", t.TempDir())
	c.baseURL = server.URL

	threads, err := c.ListRecentThreads(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, "t1", threads[0].ID)
	assert.Equal(t, []string{"lead1"}, threads[0].ParticipantIDs)
	assert.Equal(t, "lead1", threads[0].LastMessage.AuthorID)
	assert.Equal(t, "Hola!", threads[0].LastMessage.Text)

	// Thread sem mensagens não carrega autor: nunca vira "resposta".
	assert.Empty(t, threads[1].LastMessage.AuthorID)
}

func TestSendDirectMessageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"fail"}`))
	}))
	defer server.Close()

	c := NewClient("alejandro.rojas", "secret", "", t.TempDir())
	c.baseURL = server.URL

	err := c.SendDirectMessage(context.Background(), "lead1", "Hola!")
	assert.Error(t, err)
}
