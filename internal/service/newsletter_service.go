// internal/service/newsletter_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/brightpixel/agency-backend/internal/errors"
	"github.com/brightpixel/agency-backend/internal/mailer"
	"github.com/brightpixel/agency-backend/internal/model"
	"github.com/brightpixel/agency-backend/internal/repository"
	"github.com/brightpixel/agency-backend/internal/themes"
)

// defaultBatchSize bounds concurrent connections to the mail transport.
const defaultBatchSize = 50

// DefaultTheme is used when a request does not name one.
const DefaultTheme = "modern"

// NewsletterService resolves a recipient set, renders a themed email per
// recipient and dispatches them in sequential batches of concurrent sends.
type NewsletterService struct {
	Repo       repository.CustomerRepositoryInterface
	Mailer     mailer.Mailer
	AgencyName string
	// BatchSize overrides the default of 50 when positive.
	BatchSize int
}

// SendRequest is the shared content of every bulk-send call.
type SendRequest struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Theme   string `json:"theme"`
}

// RecipientResult records the outcome of one attempted send.
type RecipientResult struct {
	CustomerID string `json:"customerId,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// SendReport aggregates per-recipient outcomes. Individual send failures
// never fail the bulk operation; they only show up here.
type SendReport struct {
	Total          int               `json:"total"`
	Successful     int               `json:"successful"`
	Failed         int               `json:"failed"`
	NotFound       int               `json:"notFound,omitempty"`
	NotFoundEmails []string          `json:"notFoundEmails,omitempty"`
	Results        []RecipientResult `json:"results"`
}

// ThemeInfo is a registered theme as shown to staff.
type ThemeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// bodyPolicy mirrors the sanitize-html configuration of the web form:
// common formatting tags plus h1-h3 and lists, inline style everywhere,
// nothing executable.
var bodyPolicy = newBodyPolicy()

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr", "div", "span", "blockquote", "pre", "code",
		"b", "strong", "i", "em", "u", "s", "small", "sub", "sup",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
	)
	p.AllowAttrs("style").Globally()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	return p
}

// SanitizeBody strips unsafe markup from a newsletter body. It runs once per
// bulk call, before any per-recipient rendering.
func SanitizeBody(body string) string {
	return bodyPolicy.Sanitize(body)
}

// validateContent checks the shared fields and resolves the theme, returning
// the sanitized body ready for rendering.
func (s *NewsletterService) validateContent(req *SendRequest) (themes.Theme, string, error) {
	if req.Theme == "" {
		req.Theme = DefaultTheme
	}
	if strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return themes.Theme{}, "", appErrors.NewValidation("Topic, subject, and body are required")
	}
	thm, ok := themes.Get(req.Theme)
	if !ok {
		return themes.Theme{}, "", appErrors.NewValidation(
			fmt.Sprintf("Invalid theme. Available themes: %s", strings.Join(themes.IDs(), ", ")))
	}
	return thm, SanitizeBody(req.Body), nil
}

// SendToAll dispatches the newsletter to every customer.
func (s *NewsletterService) SendToAll(ctx context.Context, req *SendRequest) (*SendReport, error) {
	thm, body, err := s.validateContent(req)
	if err != nil {
		return nil, err
	}
	customers, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, appErrors.NewSelectionEmpty("No customers found to send emails to")
	}
	return s.dispatch(ctx, customers, thm, req, body, false), nil
}

// SendToEmails dispatches to the customers owning the given addresses and
// reports which input addresses matched no customer.
func (s *NewsletterService) SendToEmails(ctx context.Context, emails []string, req *SendRequest) (*SendReport, error) {
	if len(emails) == 0 {
		return nil, appErrors.NewValidation("Please provide an array of email addresses")
	}
	thm, body, err := s.validateContent(req)
	if err != nil {
		return nil, err
	}

	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = model.NormalizeEmail(e)
	}
	customers, err := s.Repo.FindByEmails(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, appErrors.NewSelectionEmpty("No customers found with the provided email addresses")
	}

	report := s.dispatch(ctx, customers, thm, req, body, false)

	found := make(map[string]bool, len(customers))
	for _, c := range customers {
		found[c.Email] = true
	}
	for i, e := range emails {
		if !found[normalized[i]] {
			report.NotFoundEmails = append(report.NotFoundEmails, e)
		}
	}
	report.NotFound = len(report.NotFoundEmails)
	return report, nil
}

// SendByService dispatches to customers whose inquiry history cites the
// given service.
func (s *NewsletterService) SendByService(ctx context.Context, serviceName string, req *SendRequest) (*SendReport, error) {
	if strings.TrimSpace(serviceName) == "" {
		return nil, appErrors.NewValidation("Service is required")
	}
	thm, body, err := s.validateContent(req)
	if err != nil {
		return nil, err
	}
	customers, err := s.Repo.FindByService(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, appErrors.NewSelectionEmpty(fmt.Sprintf("No customers found interested in %s", serviceName))
	}
	return s.dispatch(ctx, customers, thm, req, body, false), nil
}

// SendByIDs dispatches to the customers with the given identifiers. Result
// rows carry the customer id in this mode.
func (s *NewsletterService) SendByIDs(ctx context.Context, ids []string, req *SendRequest) (*SendReport, error) {
	if len(ids) == 0 {
		return nil, appErrors.NewValidation("Please provide an array of customer IDs")
	}
	thm, body, err := s.validateContent(req)
	if err != nil {
		return nil, err
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, appErrors.NewValidation(fmt.Sprintf("%s is not a valid customer ID", id))
		}
		oids = append(oids, oid)
	}

	customers, err := s.Repo.FindByIDs(ctx, oids)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, appErrors.NewSelectionEmpty("No customers found with the provided IDs")
	}
	return s.dispatch(ctx, customers, thm, req, body, true), nil
}

// Preview renders one document for a placeholder recipient without touching
// the mail transport. Identical inputs yield identical output.
func (s *NewsletterService) Preview(req *SendRequest, recipientName string) (string, error) {
	thm, body, err := s.validateContent(req)
	if err != nil {
		return "", err
	}
	return thm.Render(themes.Data{
		Topic:         req.Topic,
		Subject:       req.Subject,
		Body:          body,
		RecipientName: recipientName,
		AgencyName:    s.AgencyName,
	}), nil
}

// Themes lists the registered theme identifiers and display names.
func (s *NewsletterService) Themes() []ThemeInfo {
	all := themes.List()
	out := make([]ThemeInfo, len(all))
	for i, t := range all {
		out[i] = ThemeInfo{ID: t.ID, Name: t.Name}
	}
	return out
}

// dispatch fans sends out in fixed-size batches. Batches run strictly one
// after another; sends within a batch run concurrently and the batch settles
// only when every send has returned, success or not.
func (s *NewsletterService) dispatch(ctx context.Context, customers []model.Customer, thm themes.Theme, req *SendRequest, sanitizedBody string, includeIDs bool) *SendReport {
	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	subject := fmt.Sprintf("%s: %s", req.Topic, req.Subject)
	results := make([]RecipientResult, len(customers))

	for start := 0; start < len(customers); start += batchSize {
		end := start + batchSize
		if end > len(customers) {
			end = len(customers)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.sendOne(ctx, customers[i], thm, req, subject, sanitizedBody, includeIDs)
			}(i)
		}
		wg.Wait()
	}

	report := &SendReport{Total: len(customers), Results: results}
	for _, r := range results {
		if r.Success {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	return report
}

func (s *NewsletterService) sendOne(ctx context.Context, c model.Customer, thm themes.Theme, req *SendRequest, subject, sanitizedBody string, includeIDs bool) RecipientResult {
	result := RecipientResult{Email: c.Email, Name: c.DisplayName()}
	if includeIDs {
		result.CustomerID = c.ID.Hex()
	}

	if c.Email == "" {
		result.Email = "unknown"
		if result.Name == "" {
			result.Name = "Unknown"
		}
		result.Error = "Invalid customer email"
		return result
	}

	html := thm.Render(themes.Data{
		Topic:         req.Topic,
		Subject:       req.Subject,
		Body:          sanitizedBody,
		RecipientName: result.Name,
		AgencyName:    s.AgencyName,
	})

	err := s.Mailer.Send(ctx, mailer.Message{
		To:      c.Email,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		logrus.WithError(err).WithField("email", c.Email).Warn("newsletter send failed")
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}
