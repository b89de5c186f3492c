package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/mkovalcik/mcrm-backend/internal/infra/cache"
	"github.com/mkovalcik/mcrm-backend/internal/infra/database"
	"github.com/mkovalcik/mcrm-backend/internal/infra/http/handlers"
	"github.com/mkovalcik/mcrm-backend/internal/infra/http/middleware"
	"github.com/mkovalcik/mcrm-backend/internal/infra/integration/cloudtalk"
	"github.com/mkovalcik/mcrm-backend/internal/infra/notify"
	"github.com/mkovalcik/mcrm-backend/internal/infra/queue"
	"github.com/mkovalcik/mcrm-backend/internal/infra/worker"
	"github.com/mkovalcik/mcrm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ database connection failed: %v", err)
	}
	defer db.Close()

	// RabbitMQ is optional: without it, reminders still go to the log
	// (and mail) sinks, only the queue fan-out is missing.
	var rabbitMQ *queue.RabbitMQ
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err = queue.NewRabbitMQ(
			envOr("RABBITMQ_USER", "guest"),
			envOr("RABBITMQ_PASS", "guest"),
			host,
			envOr("RABBITMQ_PORT", "5672"),
		)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, reminders degrade to log/mail only: %v", err)
			rabbitMQ = nil
		} else {
			defer rabbitMQ.Conn.Close()
			defer rabbitMQ.Ch.Close()
		}
	}

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	callLogRepo := database.NewCallLogRepository(db)
	profileRepo := database.NewProfileRepository(db)
	recordRepo := database.NewRecordRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	requestRepo := database.NewChangeRequestRepository(db)

	// 2. Gateways and adapters
	ctClient := cloudtalk.NewClient(
		os.Getenv("CT_KEY_ID"),
		os.Getenv("CT_KEY_SECRET"),
		os.Getenv("CLOUDTALK_BASE_URL"),
	)

	dedup := newDedupStore()

	notifier := notify.MultiNotifier{&notify.LogNotifier{}}
	if rabbitMQ != nil {
		notifier = append(notifier, notify.NewQueueNotifier(rabbitMQ.Ch, queue.ExchangeName, queue.RoutingKey))
	}

	// 3. Queue worker: consumes reminder events and delivers them
	if rabbitMQ != nil {
		delivery := newDeliverySink()
		reminderWorker := queue.NewWorker(rabbitMQ.Ch, delivery)
		go reminderWorker.Start(queue.QueueName)
	}

	// 4. UseCases
	setStatusUC := usecase.NewSetContactStatusUseCase(contactRepo)
	recordCallUC := usecase.NewRecordCallUseCase(contactRepo, callLogRepo)
	calendarUC := usecase.NewCalendarUseCase(contactRepo)
	initiateCallUC := usecase.NewInitiateCallUseCase(contactRepo, profileRepo, settingsRepo, ctClient)
	payrollUC := usecase.NewPayrollUseCase(profileRepo, recordRepo, settingsRepo)
	reviewUC := usecase.NewReviewChangeRequestUseCase(requestRepo, profileRepo)

	// 5. Follow-up scanner
	followUpWorker := worker.NewFollowUpWorker(contactRepo, profileRepo, dedup, notifier)
	go followUpWorker.Start(context.Background())

	// 6. Handlers
	contactHandler := handlers.NewContactHandler(contactRepo, callLogRepo, setStatusUC, recordCallUC, calendarUC, initiateCallUC)
	cloudTalkHandler := handlers.NewCloudTalkHandler(ctClient)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	recordHandler := handlers.NewRecordHandler(recordRepo, profileRepo, payrollUC)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	requestHandler := handlers.NewChangeRequestHandler(requestRepo, reviewUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn(rabbitMQ), ctClient)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID", "X-User-Role"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/contacts", contactHandler.HandleList)
		r.Post("/contacts", contactHandler.HandleUpsert)
		r.Delete("/contacts/{id}", contactHandler.HandleDelete)
		r.Patch("/contacts/{id}/status", contactHandler.HandleSetStatus)
		r.Post("/contacts/{id}/calls", contactHandler.HandleRecordCall)
		r.Get("/contacts/{id}/calls", contactHandler.HandleListCalls)
		r.Post("/contacts/{id}/call", contactHandler.HandleInitiateCall)
		r.Get("/calendar", contactHandler.HandleCalendar)

		r.Post("/cloudtalk/call", cloudTalkHandler.HandleCall)
		r.Get("/cloudtalk/envcheck", cloudTalkHandler.HandleEnvCheck)

		r.Get("/profiles", profileHandler.HandleList)
		r.Post("/profiles", profileHandler.HandleEnsure)
		r.Get("/profiles/{id}", profileHandler.HandleGet)
		r.Patch("/profiles/{id}", profileHandler.HandleUpdate)

		r.Get("/records", recordHandler.HandleList)
		r.Post("/records", recordHandler.HandleUpsert)
		r.Delete("/records", recordHandler.HandleDelete)
		r.Get("/salaries", recordHandler.HandleSalaries)

		r.Get("/settings", settingsHandler.HandleGet)
		r.Put("/settings", settingsHandler.HandleUpdate)

		r.Post("/change-requests", requestHandler.HandleCreate)
		r.Get("/change-requests", requestHandler.HandleList)
		r.Post("/change-requests/{id}/review", requestHandler.HandleReview)
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 mcrm backend listening on %s", port)
	http.ListenAndServe(port, r)
}

// newDedupStore prefers redis so reminder dedup survives restarts,
// falling back to the in-process store.
func newDedupStore() cache.DedupStore {
	ttl := 30 * 24 * time.Hour
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := rdb.Ping(context.Background()).Err(); err == nil {
			return cache.NewRedisDedupStore(rdb, ttl)
		}
		log.Println("⚠️ redis unavailable, reminder dedup is in-memory only")
	}
	return cache.NewMemoryDedupStore(ttl)
}

// newDeliverySink builds what the queue worker delivers reminders
// with: mail when SMTP is configured, otherwise just the log.
func newDeliverySink() notify.Notifier {
	sink := notify.MultiNotifier{&notify.LogNotifier{}}
	if host := os.Getenv("MAIL_HOST"); host != "" {
		sink = append(sink, notify.NewMailNotifier(
			host, 587,
			os.Getenv("MAIL_USER"),
			os.Getenv("MAIL_PASS"),
			envOr("MAIL_FROM", os.Getenv("MAIL_USER")),
		))
	}
	return sink
}

func rabbitConn(mq *queue.RabbitMQ) *amqp091.Connection {
	if mq == nil {
		return nil
	}
	return mq.Conn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
