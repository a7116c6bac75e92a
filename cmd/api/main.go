package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/http/handlers"
	"github.com/emika-hq/prospect-hub/internal/infra/http/middleware"
	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
	"github.com/emika-hq/prospect-hub/internal/infra/queue"
	"github.com/emika-hq/prospect-hub/internal/infra/storage"
	"github.com/emika-hq/prospect-hub/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Durable layer: Postgres when DATABASE_URL is set, JSON files otherwise
	var durable storage.Durable
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := storage.NewPostgresLayer(dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		durable = pg
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		fl, err := storage.NewFileLayer(dataDir)
		if err != nil {
			log.Fatal(err)
		}
		durable = fl
	}
	store := storage.NewStore(durable)

	// 2. Repositories
	prospectRepo := storage.NewProspectRepository(store)
	profileRepo := storage.NewProfileRepository(store)
	campaignRepo := storage.NewCampaignRepository(store)
	templateRepo := storage.NewTemplateRepository(store)
	configRepo := storage.NewConfigRepository(store, os.Getenv("APOLLO_API_KEY"))

	// 3. Provider and event producer
	providers := map[string]usecase.EnrichmentProvider{
		entity.ProviderApollo: apollo.NewClient(os.Getenv("APOLLO_BASE_URL")),
	}

	var publisher usecase.EventPublisherInterface
	if url := os.Getenv("AMQP_URL"); url != "" {
		rabbitMQ, err := queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 4. UseCases
	prospectsUC := usecase.NewProspectsUseCase(prospectRepo)
	importUC := usecase.NewImportProspectsUseCase(prospectRepo, publisher)
	enrichUC := usecase.NewEnrichProspectsUseCase(prospectRepo, configRepo, providers, publisher)
	rescoreUC := usecase.NewRescoreAllUseCase(prospectRepo, profileRepo)
	searchUC := usecase.NewSearchPeopleUseCase(configRepo, providers)

	// 5. Handlers
	prospectHandler := handlers.NewProspectHandler(prospectsUC, importUC, enrichUC)
	profileHandler := handlers.NewProfileHandler(profileRepo, rescoreUC)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	configHandler := handlers.NewConfigHandler(configRepo)
	searchHandler := handlers.NewSearchHandler(searchUC)
	systemHandler := handlers.NewSystemHandler(prospectRepo, profileRepo, campaignRepo, configRepo)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/records", prospectHandler.HandleList)
	r.Post("/records", prospectHandler.HandleCreate)
	r.Delete("/records", prospectHandler.HandleBulkDelete)
	r.Put("/records/{id}", prospectHandler.HandleUpdate)
	r.Delete("/records/{id}", prospectHandler.HandleDelete)
	r.Post("/records/import", prospectHandler.HandleImport)
	r.Post("/records/enrich", prospectHandler.HandleEnrich)
	r.Post("/records/bulk", prospectHandler.HandleBulkAdd)

	r.Get("/profiles", profileHandler.HandleList)
	r.Post("/profiles", profileHandler.HandleCreate)
	r.Put("/profiles/{id}", profileHandler.HandleUpdate)
	r.Delete("/profiles/{id}", profileHandler.HandleDelete)

	r.Get("/campaigns", campaignHandler.HandleList)
	r.Post("/campaigns", campaignHandler.HandleCreate)
	r.Put("/campaigns/{id}", campaignHandler.HandleUpdate)
	r.Delete("/campaigns/{id}", campaignHandler.HandleDelete)
	r.Post("/campaigns/{id}/prospects", campaignHandler.HandleAddProspects)

	r.Get("/templates", templateHandler.HandleList)
	r.Post("/templates", templateHandler.HandleCreate)
	r.Put("/templates/{id}", templateHandler.HandleUpdate)
	r.Delete("/templates/{id}", templateHandler.HandleDelete)

	r.Post("/search", searchHandler.Handle)
	r.Get("/config", configHandler.HandleGet)
	r.Put("/config", configHandler.HandleUpdate)
	r.Get("/status", systemHandler.HandleStatus)
	r.Get("/analytics", systemHandler.HandleAnalytics)
	r.Get("/healthz", systemHandler.HandleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("prospect-hub listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
