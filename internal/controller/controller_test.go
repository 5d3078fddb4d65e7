package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brightpixel/agency-backend/internal/controller"
	"github.com/brightpixel/agency-backend/internal/mailer"
	"github.com/brightpixel/agency-backend/internal/model"
	"github.com/brightpixel/agency-backend/internal/repository"
	"github.com/brightpixel/agency-backend/internal/service"
)

type stubMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *stubMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestRouter() (chi.Router, *repository.MemoryCustomerRepository, *stubMailer) {
	repo := repository.NewMemoryCustomerRepository()
	mail := &stubMailer{}

	customers := &controller.CustomerController{Service: &service.CustomerService{
		Repo:       repo,
		AgencyName: "BrightPixel",
	}}
	newsletter := &controller.NewsletterController{Service: &service.NewsletterService{
		Repo:       repo,
		Mailer:     mail,
		AgencyName: "BrightPixel",
	}}

	r := chi.NewRouter()
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", customers.CreateCustomer)
		r.Get("/", customers.ListCustomers)
		r.Get("/stats", customers.GetCustomerStats)
		r.Get("/{id}", customers.GetCustomer)
		r.Put("/{id}", customers.UpdateCustomer)
		r.Patch("/{id}", customers.UpdateCustomer)
		r.Delete("/{id}", customers.DeleteCustomer)
	})
	r.Route("/newsletter", func(r chi.Router) {
		r.Get("/themes", newsletter.GetThemes)
		r.Post("/preview", newsletter.PreviewTemplate)
		r.Post("/send-all", newsletter.SendToAll)
		r.Post("/send-specific", newsletter.SendToSpecific)
		r.Post("/send-by-service", newsletter.SendByService)
		r.Post("/send-by-ids", newsletter.SendByIDs)
	})
	return r, repo, mail
}

func doJSON(t *testing.T, r chi.Router, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func submissionPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"firstName":          "Ada",
		"lastName":           "Lovelace",
		"email":              email,
		"phone":              "+44 20 7946 0958",
		"servicesInterested": []string{"Email Marketing"},
		"message":            "Campaign help needed",
	}
}

func TestCustomerLifecycle(t *testing.T) {
	r, _, _ := newTestRouter()

	// First submission creates the customer.
	rec, envelope := doJSON(t, r, http.MethodPost, "/customers", submissionPayload("ada@example.com"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if envelope["message"] != "Customer inquiry created successfully" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
	data := envelope["data"].(map[string]interface{})
	id := data["id"].(string)

	// Second submission from the same address appends instead.
	rec, envelope = doJSON(t, r, http.MethodPost, "/customers", submissionPayload("ADA@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if envelope["message"] != "Customer inquiry added successfully" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
	data = envelope["data"].(map[string]interface{})
	if n := len(data["inquiries"].([]interface{})); n != 2 {
		t.Errorf("expected 2 inquiries, got %d", n)
	}

	// Fetch by id.
	rec, envelope = doJSON(t, r, http.MethodGet, "/customers/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Move the lead along the pipeline.
	rec, envelope = doJSON(t, r, http.MethodPatch, "/customers/"+id, map[string]interface{}{
		"status":      "contacted",
		"isContacted": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data = envelope["data"].(map[string]interface{})
	if data["status"] != "contacted" {
		t.Errorf("expected status contacted, got %v", data["status"])
	}

	// Delete, then the id is gone.
	rec, _ = doJSON(t, r, http.MethodDelete, "/customers/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec, envelope = doJSON(t, r, http.MethodGet, "/customers/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if envelope["message"] != "Customer not found" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	r, _, _ := newTestRouter()

	payload := submissionPayload("not-an-email")
	payload["servicesInterested"] = []string{}

	rec, envelope := doJSON(t, r, http.MethodPost, "/customers", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if envelope["message"] != "Validation failed" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
	errs := envelope["errors"].([]interface{})
	if len(errs) < 2 {
		t.Errorf("expected messages for email and services, got %v", errs)
	}
}

func TestCreateCustomerBadJSON(t *testing.T) {
	r, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCustomersPagination(t *testing.T) {
	r, repo, _ := newTestRouter()
	for i := 0; i < 12; i++ {
		c := &model.Customer{
			Email:  fmt.Sprintf("user%02d@example.com", i),
			Status: model.StatusNew,
		}
		if err := repo.Insert(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}

	rec, envelope := doJSON(t, r, http.MethodGet, "/customers?page=2&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if n := len(envelope["data"].([]interface{})); n != 5 {
		t.Errorf("expected 5 customers on page 2, got %d", n)
	}
	pagination := envelope["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 12 || pagination["pages"].(float64) != 3 {
		t.Errorf("unexpected pagination: %v", pagination)
	}
}

func TestUpdateEmailConflict(t *testing.T) {
	r, repo, _ := newTestRouter()
	ctx := context.Background()

	first := &model.Customer{Email: "first@example.com", Status: model.StatusNew}
	second := &model.Customer{Email: "second@example.com", Status: model.StatusNew}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatal(err)
	}

	rec, envelope := doJSON(t, r, http.MethodPut, "/customers/"+second.ID.Hex(), map[string]interface{}{
		"email": "first@example.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if envelope["message"] != "Email already in use by another customer" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}

func TestCustomerStats(t *testing.T) {
	r, repo, _ := newTestRouter()
	if err := repo.Insert(context.Background(), &model.Customer{
		Email:  "lead@example.com",
		Status: model.StatusNew,
		Inquiries: []model.Inquiry{
			{ServicesInterested: []string{"Email Marketing"}},
		},
	}); err != nil {
		t.Fatal(err)
	}

	rec, envelope := doJSON(t, r, http.MethodGet, "/customers/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := envelope["data"].(map[string]interface{})
	if data["totalCustomers"].(float64) != 1 {
		t.Errorf("unexpected stats: %v", data)
	}
}

func TestNewsletterThemes(t *testing.T) {
	r, _, _ := newTestRouter()

	rec, envelope := doJSON(t, r, http.MethodGet, "/newsletter/themes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	themes := envelope["data"].([]interface{})
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}
}

func TestNewsletterPreview(t *testing.T) {
	r, _, mail := newTestRouter()

	rec, envelope := doJSON(t, r, http.MethodPost, "/newsletter/preview", map[string]interface{}{
		"topic":   "August Update",
		"subject": "Fresh offers",
		"body":    "<p>Hello</p>",
		"theme":   "classic",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]interface{})
	if data["theme"] != "classic" {
		t.Errorf("unexpected theme: %v", data["theme"])
	}
	html := data["html"].(string)
	if !bytes.Contains([]byte(html), []byte("John Doe")) {
		t.Error("preview should address the placeholder recipient")
	}
	if mail.count() != 0 {
		t.Error("preview must not send anything")
	}
}

func TestNewsletterSendAll(t *testing.T) {
	r, repo, mail := newTestRouter()

	payload := map[string]interface{}{
		"topic":   "August Update",
		"subject": "Fresh offers",
		"body":    "<p>Hello</p>",
	}

	// No customers yet: the selection is empty and nothing goes out.
	rec, envelope := doJSON(t, r, http.MethodPost, "/newsletter/send-all", payload)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if envelope["message"] != "No customers found to send emails to" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}

	if err := repo.Insert(context.Background(), &model.Customer{
		Email:  "lead@example.com",
		Status: model.StatusNew,
	}); err != nil {
		t.Fatal(err)
	}

	rec, envelope = doJSON(t, r, http.MethodPost, "/newsletter/send-all", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := envelope["stats"].(map[string]interface{})
	if stats["successful"].(float64) != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
	if mail.count() != 1 {
		t.Errorf("expected 1 delivery, got %d", mail.count())
	}
}

func TestNewsletterSendSpecific(t *testing.T) {
	r, repo, _ := newTestRouter()
	if err := repo.Insert(context.Background(), &model.Customer{
		Email:  "lead@example.com",
		Status: model.StatusNew,
	}); err != nil {
		t.Fatal(err)
	}

	rec, envelope := doJSON(t, r, http.MethodPost, "/newsletter/send-specific", map[string]interface{}{
		"topic":   "August Update",
		"subject": "Fresh offers",
		"body":    "<p>Hello</p>",
		"emails":  []string{"lead@example.com", "ghost@example.com"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := envelope["stats"].(map[string]interface{})
	if stats["notFound"].(float64) != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
	notFound := envelope["notFoundEmails"].([]interface{})
	if len(notFound) != 1 || notFound[0] != "ghost@example.com" {
		t.Errorf("unexpected notFoundEmails: %v", notFound)
	}
}

func TestNewsletterSendByIDs(t *testing.T) {
	r, repo, _ := newTestRouter()
	c := &model.Customer{Email: "lead@example.com", Status: model.StatusNew}
	if err := repo.Insert(context.Background(), c); err != nil {
		t.Fatal(err)
	}

	rec, envelope := doJSON(t, r, http.MethodPost, "/newsletter/send-by-ids", map[string]interface{}{
		"topic":       "August Update",
		"subject":     "Fresh offers",
		"body":        "<p>Hello</p>",
		"customerIds": []string{c.ID.Hex()},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	results := envelope["results"].([]interface{})
	row := results[0].(map[string]interface{})
	if row["customerId"] != c.ID.Hex() {
		t.Errorf("expected customerId in result row, got %v", row)
	}
}

func TestNewsletterInvalidTheme(t *testing.T) {
	r, repo, mail := newTestRouter()
	if err := repo.Insert(context.Background(), &model.Customer{
		Email:  "lead@example.com",
		Status: model.StatusNew,
	}); err != nil {
		t.Fatal(err)
	}

	rec, envelope := doJSON(t, r, http.MethodPost, "/newsletter/send-all", map[string]interface{}{
		"topic":   "August Update",
		"subject": "Fresh offers",
		"body":    "<p>Hello</p>",
		"theme":   "neon",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if envelope["message"] != "Validation failed" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
	if mail.count() != 0 {
		t.Error("invalid theme must stop the send before any delivery")
	}
}
