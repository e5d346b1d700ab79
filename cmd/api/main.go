package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/insta-setter/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/insta-setter/internal/infra/http/middleware"
	"github.com/xavierca1/insta-setter/internal/infra/mail"
	"github.com/xavierca1/insta-setter/internal/infra/queue"
	"github.com/xavierca1/insta-setter/internal/usecase"
)

func main() {
	godotenv.Load()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// RabbitMQ é opcional: sem URL o agente roda sem fan-out de eventos.
	var rabbitMQ *queue.RabbitMQ
	var events usecase.LeadEventPublisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		events = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		log.Println("🐰 RabbitMQ conectado: eventos de lead ligados.")
	} else {
		log.Println("⚠️ RABBITMQ_URL não configurada. Eventos de lead desligados.")
	}

	// SMTP também é opcional: sem MAIL_HOST ninguém recebe alerta.
	var mailer usecase.ReplyAlertService
	if host := os.Getenv("MAIL_HOST"); host != "" {
		port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if err != nil {
			port = 587
		}
		mailer = mail.NewEmailSender(
			host, port,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
	}

	handle := usecase.NewAgentHandle()
	factory := &engineFactory{
		dataDir:    dataDir,
		events:     events,
		mailer:     mailer,
		alertEmail: os.Getenv("ALERT_EMAIL"),
	}

	agentHandler := handlers.NewAgentHandler(handle, factory)
	kpiHandler := handlers.NewKPIHandler(dataDir)
	healthHandler := handlers.NewHealthHandler(dataDir, rabbitConn(rabbitMQ))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/start", agentHandler.HandleStart)
	r.Post("/stop", agentHandler.HandleStop)
	r.Get("/status", agentHandler.HandleStatus)
	r.Get("/kpis", kpiHandler.HandleGetKPIs)
	r.Get("/kpis/{accountId}", kpiHandler.HandleGetKPIs)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Appointment-setter rodando na porta :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func rabbitConn(r *queue.RabbitMQ) *amqp.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
