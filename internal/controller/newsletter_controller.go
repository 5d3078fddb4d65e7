// internal/controller/newsletter_controller.go
package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brightpixel/agency-backend/internal/service"
)

// NewsletterController exposes the bulk mailer over HTTP.
type NewsletterController struct {
	Service *service.NewsletterService
	Debug   bool
}

// defaultPreviewName stands in for a real recipient in previews.
const defaultPreviewName = "John Doe"

// GetThemes lists the registered email themes.
func (c *NewsletterController) GetThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    c.Service.Themes(),
	})
}

// PreviewTemplate renders a theme for a placeholder recipient without
// sending anything.
func (c *NewsletterController) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		service.SendRequest
		RecipientName string `json:"recipientName"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.RecipientName == "" {
		body.RecipientName = defaultPreviewName
	}

	html, err := c.Service.Preview(&body.SendRequest, body.RecipientName)
	if err != nil {
		writeError(w, err, "Failed to generate preview", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Email template preview generated",
		"data": map[string]interface{}{
			"theme": body.Theme,
			"html":  html,
		},
	})
}

// SendToAll broadcasts the newsletter to every customer.
func (c *NewsletterController) SendToAll(w http.ResponseWriter, r *http.Request) {
	var req service.SendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := c.Service.SendToAll(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to send newsletter", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Newsletter sent to all customers",
		"stats": map[string]interface{}{
			"total":      report.Total,
			"successful": report.Successful,
			"failed":     report.Failed,
		},
		"results": report.Results,
	})
}

// SendToSpecific sends to an explicit address list and reports the input
// addresses that matched no customer.
func (c *NewsletterController) SendToSpecific(w http.ResponseWriter, r *http.Request) {
	var body struct {
		service.SendRequest
		Emails []string `json:"emails"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	report, err := c.Service.SendToEmails(r.Context(), body.Emails, &body.SendRequest)
	if err != nil {
		writeError(w, err, "Failed to send newsletter", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Newsletter sent to specified customers",
		"stats": map[string]interface{}{
			"total":      report.Total,
			"successful": report.Successful,
			"failed":     report.Failed,
			"notFound":   report.NotFound,
		},
		"notFoundEmails": report.NotFoundEmails,
		"results":        report.Results,
	})
}

// SendByService sends to every customer whose inquiry history cites the
// given service.
func (c *NewsletterController) SendByService(w http.ResponseWriter, r *http.Request) {
	var body struct {
		service.SendRequest
		Service string `json:"service"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	report, err := c.Service.SendByService(r.Context(), body.Service, &body.SendRequest)
	if err != nil {
		writeError(w, err, "Failed to send newsletter", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Newsletter sent to customers interested in %s", body.Service),
		"stats": map[string]interface{}{
			"total":      report.Total,
			"successful": report.Successful,
			"failed":     report.Failed,
		},
		"results": report.Results,
	})
}

// SendByIDs sends to an explicit customer-id list.
func (c *NewsletterController) SendByIDs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		service.SendRequest
		CustomerIDs []string `json:"customerIds"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	report, err := c.Service.SendByIDs(r.Context(), body.CustomerIDs, &body.SendRequest)
	if err != nil {
		writeError(w, err, "Failed to send newsletter", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Newsletter sent to specified customers",
		"stats": map[string]interface{}{
			"total":      report.Total,
			"successful": report.Successful,
			"failed":     report.Failed,
		},
		"results": report.Results,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
		return false
	}
	return true
}
