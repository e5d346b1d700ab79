package usecase

// StartAgentInput é o corpo do POST /start.
type StartAgentInput struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	TargetAccount        string `json:"target_account"`
	APIKey               string `json:"api_key,omitempty"`
	VerificationCode     string `json:"verification_code,omitempty"`
	DailyLimit           int    `json:"daily_limit,omitempty"`
	CheckIntervalMinutes int    `json:"check_interval_minutes,omitempty"`
}

type StartAgentOutput struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

// KPIReport é a visão agregada computada a partir do lead store.
type KPIReport struct {
	AccountID         string  `json:"account_id"`
	MessagesSentToday int     `json:"messages_sent_today"`
	TotalSent         int     `json:"total_sent"`
	TotalReplies      int     `json:"total_replies"`
	TotalQualified    int     `json:"total_qualified"`
	ResponseRate      float64 `json:"response_rate"`
	QualificationRate float64 `json:"qualification_rate"`
	Msg               string  `json:"msg,omitempty"`
}
