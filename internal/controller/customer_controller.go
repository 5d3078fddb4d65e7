// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brightpixel/agency-backend/internal/model"
	"github.com/brightpixel/agency-backend/internal/service"
)

// CustomerController exposes the customer store over HTTP.
type CustomerController struct {
	Service *service.CustomerService
	// Debug exposes internal error messages on 500 responses.
	Debug bool
}

// CreateCustomer accepts a web-form inquiry submission. 201 when a new
// customer is created, 200 when an existing one gets the inquiry appended.
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var sub model.InquirySubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	customer, created, err := c.Service.SubmitInquiry(r.Context(), &sub)
	if err != nil {
		writeError(w, err, "Failed to process customer inquiry", c.Debug)
		return
	}

	status := http.StatusOK
	message := "Customer inquiry added successfully"
	if created {
		status = http.StatusCreated
		message = "Customer inquiry created successfully"
	}
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    customer,
	})
}

// ListCustomers returns a filtered, paginated customer listing.
func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")
	serviceName := r.URL.Query().Get("servicesInterested")

	customers, pagination, err := c.Service.List(r.Context(), status, serviceName, page, limit)
	if err != nil {
		writeError(w, err, "Failed to fetch customers", c.Debug)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       customers,
		"pagination": pagination,
	})
}

// GetCustomerStats returns the aggregate dashboard numbers.
func (c *CustomerController) GetCustomerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch statistics", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// GetCustomer returns a single customer by id.
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := c.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Failed to fetch customer", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    customer,
	})
}

// UpdateCustomer applies a partial update of customer-level fields. Serves
// both PUT and PATCH.
func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var patch model.CustomerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	customer, err := c.Service.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		writeError(w, err, "Failed to update customer", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// DeleteCustomer removes a customer and its inquiry history.
func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Failed to delete customer", c.Debug)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Customer deleted successfully",
	})
}
