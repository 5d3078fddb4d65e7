// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/brightpixel/agency-backend/internal/config"
	"github.com/brightpixel/agency-backend/internal/controller"
	"github.com/brightpixel/agency-backend/internal/db"
	"github.com/brightpixel/agency-backend/internal/mailer"
	"github.com/brightpixel/agency-backend/internal/repository"
	"github.com/brightpixel/agency-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	customerRepo := repository.NewCustomerRepository(client.Database(cfg.MongoDatabase))
	if err := customerRepo.EnsureIndexes(context.Background()); err != nil {
		logrus.WithError(err).Warn("failed to ensure indexes")
	}

	smtp := &mailer.SMTP{
		Host:        cfg.EmailHost,
		Port:        cfg.EmailPort,
		Username:    cfg.EmailUser,
		Password:    cfg.EmailPassword,
		FromName:    cfg.EmailFromName,
		FromAddress: cfg.EmailUser,
		Timeout:     time.Duration(cfg.SendTimeoutSeconds) * time.Second,
	}

	customerService := &service.CustomerService{
		Repo:              customerRepo,
		Mailer:            smtp,
		AgencyName:        cfg.EmailFromName,
		SendConfirmations: cfg.SendConfirmations,
	}
	newsletterService := &service.NewsletterService{
		Repo:       customerRepo,
		Mailer:     smtp,
		AgencyName: cfg.EmailFromName,
	}

	customerController := &controller.CustomerController{
		Service: customerService,
		Debug:   cfg.Debug,
	}
	newsletterController := &controller.NewsletterController{
		Service: newsletterService,
		Debug:   cfg.Debug,
	}

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	// Customer routes
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", customerController.CreateCustomer)
		r.Get("/", customerController.ListCustomers)
		r.Get("/stats", customerController.GetCustomerStats)
		r.Get("/{id}", customerController.GetCustomer)
		r.Put("/{id}", customerController.UpdateCustomer)
		r.Patch("/{id}", customerController.UpdateCustomer)
		r.Delete("/{id}", customerController.DeleteCustomer)
	})

	// Newsletter routes
	r.Route("/newsletter", func(r chi.Router) {
		r.Get("/themes", newsletterController.GetThemes)
		r.Post("/preview", newsletterController.PreviewTemplate)
		r.Post("/send-all", newsletterController.SendToAll)
		r.Post("/send-specific", newsletterController.SendToSpecific)
		r.Post("/send-by-service", newsletterController.SendByService)
		r.Post("/send-by-ids", newsletterController.SendByIDs)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	logrus.Infof("server running on %s", cfg.Address)
	logrus.Fatal(http.ListenAndServe(cfg.Address, r))
}
