package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/xavierca1/insta-setter/internal/entity"
)

const defaultBaseURL = "https://i.instagram.com/api/v1"

// ErrTwoFactorRequired: a plataforma pediu segundo fator e nenhum código
// foi informado. Fatal para o run.
var ErrTwoFactorRequired = errors.New("two factor required and no verification code provided")

type Client struct {
	username         string
	password         string
	verificationCode string
	baseURL          string
	sessionDir       string
	http             *http.Client

	token      string
	selfUserID string
}

func NewClient(username, password, verificationCode, sessionDir string) *Client {
	return &Client{
		username:         username,
		password:         password,
		verificationCode: verificationCode,
		baseURL:          defaultBaseURL,
		sessionDir:       sessionDir,
		http:             &http.Client{Timeout: 30 * time.Second},
	}
}

// Login tenta reusar a sessão persistida; sem sessão (ou sessão morta) faz
// login com credenciais, tratando 2FA. Sucesso persiste a sessão e guarda
// o user id da própria conta.
func (c *Client) Login(ctx context.Context) error {
	if state, err := c.loadSession(); err == nil {
		c.token = state.Token
		c.selfUserID = state.UserID
		if err := c.verifySession(ctx); err == nil {
			log.Printf("🔑 Instagram: sessão reutilizada (user_id=%s)", c.selfUserID)
			return nil
		}
		log.Println("⚠️ Instagram: sessão persistida expirou, fazendo login novo.")
		c.token = ""
		c.selfUserID = ""
	} else {
		log.Println("🔑 Instagram: nenhuma sessão salva, fazendo login novo.")
	}

	resp, err := c.doLogin(ctx)
	if err != nil {
		return err
	}

	if resp.TwoFactorRequired {
		if c.verificationCode == "" {
			return ErrTwoFactorRequired
		}
		resp, err = c.doTwoFactorLogin(ctx, resp.TwoFactorInfo.TwoFactorIdentifier)
		if err != nil {
			return err
		}
	}

	c.token = resp.Token
	c.selfUserID = resp.LoggedInUser.PK

	if err := c.saveSession(); err != nil {
		// Sessão não persistida só custa um login novo no próximo restart.
		log.Printf("⚠️ Instagram: falha ao salvar sessão: %v", err)
	}
	log.Printf("✅ Instagram: login ok (user_id=%s)", c.selfUserID)
	return nil
}

func (c *Client) SelfUserID() string {
	return c.selfUserID
}

// ListFollowers resolve a conta alvo e devolve até limit seguidores.
func (c *Client) ListFollowers(ctx context.Context, account string, limit int) ([]entity.FollowerProfile, error) {
	targetID, err := c.userIDFromUsername(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("resolver conta @%s: %w", account, err)
	}

	var out followersResponse
	path := fmt.Sprintf("/friendships/%s/followers/?count=%d", targetID, limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listar seguidores de @%s: %w", account, err)
	}

	followers := make([]entity.FollowerProfile, 0, len(out.Users))
	for _, u := range out.Users {
		followers = append(followers, entity.FollowerProfile{
			UserID:   u.PK,
			Username: u.Username,
			FullName: u.FullName,
		})
	}
	return followers, nil
}

// SendDirectMessage envia um DM de texto. Falha é "não enviado": sem retry.
func (c *Client) SendDirectMessage(ctx context.Context, userID, text string) error {
	form := url.Values{}
	form.Set("recipient_users", fmt.Sprintf(`[["%s"]]`, userID))
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/direct_v2/threads/broadcast/text/",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request instagram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("envio de DM recusado (status %d): %s", resp.StatusCode, string(body))
	}

	var out broadcastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("erro decode instagram: %w", err)
	}
	if out.Status != "ok" {
		return fmt.Errorf("envio de DM falhou: status=%s", out.Status)
	}
	return nil
}

// ListRecentThreads devolve até limit threads com apenas a mensagem mais
// recente de cada um.
func (c *Client) ListRecentThreads(ctx context.Context, limit int) ([]entity.Thread, error) {
	var out inboxResponse
	path := fmt.Sprintf("/direct_v2/inbox/?limit=%d&thread_message_limit=1", limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listar inbox: %w", err)
	}

	threads := make([]entity.Thread, 0, len(out.Inbox.Threads))
	for _, t := range out.Inbox.Threads {
		thread := entity.Thread{ID: t.ThreadID}
		for _, u := range t.Users {
			thread.ParticipantIDs = append(thread.ParticipantIDs, u.PK)
		}
		if len(t.Items) > 0 {
			thread.LastMessage = entity.ThreadMessage{
				AuthorID: t.Items[0].UserID,
				Text:     t.Items[0].Text,
			}
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func (c *Client) userIDFromUsername(ctx context.Context, account string) (string, error) {
	var out userInfoResponse
	path := "/users/" + url.PathEscape(account) + "/usernameinfo/"
	if err := c.get(ctx, path, &out); err != nil {
		return "", err
	}
	if out.User.PK == "" {
		return "", fmt.Errorf("conta @%s não encontrada", account)
	}
	return out.User.PK, nil
}

func (c *Client) verifySession(ctx context.Context) error {
	var out userInfoResponse
	return c.get(ctx, "/accounts/current_user/", &out)
}

func (c *Client) doLogin(ctx context.Context) (*loginResponse, error) {
	return c.postLogin(ctx, "/accounts/login/", loginRequest{
		Username: c.username,
		Password: c.password,
	})
}

func (c *Client) doTwoFactorLogin(ctx context.Context, identifier string) (*loginResponse, error) {
	return c.postLogin(ctx, "/accounts/two_factor_login/", twoFactorLoginRequest{
		Username:            c.username,
		VerificationCode:    c.verificationCode,
		TwoFactorIdentifier: identifier,
	})
}

func (c *Client) postLogin(ctx context.Context, path string, payload any) (*loginResponse, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request instagram: %w", err)
	}
	defer resp.Body.Close()

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erro decode login: %w", err)
	}

	// 2FA chega como 400 com two_factor_required no corpo.
	if out.TwoFactorRequired {
		return &out, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("login recusado (status %d)", resp.StatusCode)
	}
	if out.Status != "ok" {
		return nil, fmt.Errorf("login falhou: status=%s", out.Status)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request instagram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("instagram respondeu %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) sessionPath() string {
	return filepath.Join(c.sessionDir, c.username+"_agent_session.json")
}

func (c *Client) loadSession() (*sessionState, error) {
	data, err := os.ReadFile(c.sessionPath())
	if err != nil {
		return nil, err
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Token == "" || state.UserID == "" {
		return nil, errors.New("sessão incompleta")
	}
	return &state, nil
}

func (c *Client) saveSession() error {
	state := sessionState{
		Username: c.username,
		UserID:   c.selfUserID,
		Token:    c.token,
		SavedAt:  time.Now(),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath(), data, 0o600)
}
