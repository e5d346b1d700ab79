package entity

// FollowerProfile é a identidade mínima que o gateway devolve ao listar
// seguidores de uma conta alvo.
type FollowerProfile struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// ThreadMessage é o resumo da mensagem mais recente de um thread.
type ThreadMessage struct {
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
}

// Thread é o resumo de uma conversa de DM: participantes + última mensagem.
type Thread struct {
	ID             string        `json:"id"`
	ParticipantIDs []string      `json:"participant_ids"`
	LastMessage    ThreadMessage `json:"last_message"`
}

// LeadInThread devolve o primeiro participante que também está no conjunto
// de leads pendentes. Limitação conhecida: se mais de um lead aparecer no
// mesmo thread, só um é processado por ciclo (um thread normalmente mapeia
// para exatamente um lead).
func (t *Thread) LeadInThread(pending map[string]bool) (string, bool) {
	for _, id := range t.ParticipantIDs {
		if pending[id] {
			return id, true
		}
	}
	return "", false
}
