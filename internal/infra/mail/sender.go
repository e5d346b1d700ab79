package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendReplyAlert avisa o time de vendas que um lead respondeu e está
// pronto para takeover humano.
func (s *EmailSender) SendReplyAlert(to, account, username, excerpt string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("💬 Lead respondeu no @%s", account))
	m.SetBody("text/plain", fmt.Sprintf(
		"O lead %s (campanha @%s) acabou de responder:\n\n%s\n\nO agente já enviou o follow-up automático. Assuma a conversa se quiser fechar.",
		username, account, excerpt,
	))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
