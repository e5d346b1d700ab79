package instagram

import "time"

// sessionState é o que persiste em <username>_agent_session.json para
// reutilizar a sessão entre restarts.
type sessionState struct {
	Username string    `json:"username"`
	UserID   string    `json:"user_id"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type twoFactorLoginRequest struct {
	Username            string `json:"username"`
	VerificationCode    string `json:"verification_code"`
	TwoFactorIdentifier string `json:"two_factor_identifier"`
}

type loginResponse struct {
	Status            string `json:"status"`
	Token             string `json:"token"`
	TwoFactorRequired bool   `json:"two_factor_required"`
	TwoFactorInfo     struct {
		TwoFactorIdentifier string `json:"two_factor_identifier"`
	} `json:"two_factor_info"`
	LoggedInUser struct {
		PK       string `json:"pk_id"`
		Username string `json:"username"`
	} `json:"logged_in_user"`
}

type userInfoResponse struct {
	Status string `json:"status"`
	User   struct {
		PK       string `json:"pk_id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
	} `json:"user"`
}

type followerUser struct {
	PK       string `json:"pk_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type followersResponse struct {
	Status string         `json:"status"`
	Users  []followerUser `json:"users"`
}

type inboxResponse struct {
	Status string `json:"status"`
	Inbox  struct {
		Threads []struct {
			ThreadID string `json:"thread_id"`
			Users    []struct {
				PK string `json:"pk_id"`
			} `json:"users"`
			Items []struct {
				UserID string `json:"user_id"`
				Text   string `json:"text"`
			} `json:"items"` // mais recente primeiro
		} `json:"threads"`
	} `json:"inbox"`
}

type broadcastResponse struct {
	Status string `json:"status"`
}
