package main

import (
	"log"
	"time"

	"github.com/xavierca1/insta-setter/internal/infra/database"
	"github.com/xavierca1/insta-setter/internal/infra/http/handlers"
	"github.com/xavierca1/insta-setter/internal/infra/integration/gemini"
	"github.com/xavierca1/insta-setter/internal/infra/integration/instagram"
	"github.com/xavierca1/insta-setter/internal/usecase"
)

// engineFactory monta um engine por request de /start: um lead store por
// conta de credenciais, gateway e composer próprios do run.
type engineFactory struct {
	dataDir    string
	events     usecase.LeadEventPublisher
	mailer     usecase.ReplyAlertService
	alertEmail string
}

func (f *engineFactory) Build(input usecase.StartAgentInput) (handlers.EngineRunner, func(), error) {
	storePath := database.LeadStorePath(f.dataDir, input.Username)
	db, err := database.NewDBConnection(storePath)
	if err != nil {
		return nil, nil, err
	}
	repo := database.NewLeadRepository(db)

	gateway := instagram.NewClient(input.Username, input.Password, input.VerificationCode, f.dataDir)

	var generator usecase.ReplyGenerator
	if input.APIKey != "" {
		generator = gemini.NewClient(input.APIKey)
	} else {
		log.Println("⚠️ API key não informada. Follow-ups automáticos desligados.")
	}
	composer := usecase.NewReplyComposer(generator)

	engine := usecase.NewEngine(
		usecase.EngineConfig{
			TargetAccount: input.TargetAccount,
			DailyLimit:    input.DailyLimit,
			CheckInterval: time.Duration(input.CheckIntervalMinutes) * time.Minute,
			AlertEmail:    f.alertEmail,
		},
		repo, gateway, composer, f.events, f.mailer,
	)

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("⚠️ Erro ao fechar lead store: %v", err)
		}
	}
	return engine, cleanup, nil
}
