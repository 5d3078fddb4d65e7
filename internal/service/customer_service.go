// internal/service/customer_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	appErrors "github.com/brightpixel/agency-backend/internal/errors"
	"github.com/brightpixel/agency-backend/internal/mailer"
	"github.com/brightpixel/agency-backend/internal/model"
	"github.com/brightpixel/agency-backend/internal/repository"
	"github.com/brightpixel/agency-backend/internal/themes"
	"github.com/brightpixel/agency-backend/internal/validation"
)

// CustomerService owns the customer entity and its inquiry history.
type CustomerService struct {
	Repo       repository.CustomerRepositoryInterface
	Mailer     mailer.Mailer // optional, used for inquiry acknowledgements
	AgencyName string
	// SendConfirmations enables the best-effort acknowledgement email on a
	// customer's first inquiry.
	SendConfirmations bool
}

// SubmitInquiry records a web-form submission. A new customer is created on
// first contact; a returning email gets its contact fields overwritten and
// the inquiry appended. The bool result reports whether a customer was
// created.
func (s *CustomerService) SubmitInquiry(ctx context.Context, sub *model.InquirySubmission) (*model.Customer, bool, error) {
	normalizeSubmission(sub)

	if msgs := validation.Struct(sub); msgs != nil {
		return nil, false, &appErrors.ValidationError{Fields: msgs}
	}

	inquiry := model.Inquiry{
		ServicesInterested: sub.ServicesInterested,
		Budget:             sub.Budget,
		Message:            sub.Message,
		HowDidYouHear:      sub.HowDidYouHear,
		CreatedAt:          time.Now().UTC(),
	}
	contact := model.ContactUpdate{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Phone:     sub.Phone,
		Company:   sub.Company,
	}

	updated, err := s.Repo.UpsertInquiry(ctx, sub.Email, contact, inquiry)
	if err != nil {
		return nil, false, err
	}
	if updated != nil {
		return updated, false, nil
	}

	customer := &model.Customer{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Company:   sub.Company,
		Inquiries: []model.Inquiry{inquiry},
		Status:    model.StatusNew,
	}
	if err := s.Repo.Insert(ctx, customer); err != nil {
		// A concurrent first submission for the same email can win the
		// insert; fall back to the append path.
		if mongo.IsDuplicateKeyError(err) {
			updated, uerr := s.Repo.UpsertInquiry(ctx, sub.Email, contact, inquiry)
			if uerr != nil {
				return nil, false, uerr
			}
			return updated, false, nil
		}
		return nil, false, err
	}

	s.sendConfirmation(customer)
	return customer, true, nil
}

// sendConfirmation fires the acknowledgement email without blocking or
// failing the submission.
func (s *CustomerService) sendConfirmation(c *model.Customer) {
	if !s.SendConfirmations || s.Mailer == nil {
		return
	}
	msg := mailer.Message{
		To:      c.Email,
		Subject: themes.ConfirmationSubject,
		HTML:    themes.RenderConfirmation(c.DisplayName(), s.AgencyName),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Mailer.Send(ctx, msg); err != nil {
			logrus.WithError(err).WithField("email", c.Email).
				Warn("failed to send inquiry confirmation")
		}
	}()
}

// List returns one page of customers, optionally filtered by status and by
// service interest anywhere in the inquiry history, newest first.
func (s *CustomerService) List(ctx context.Context, status, service string, page, limit int) ([]model.Customer, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := int64(page-1) * int64(limit)

	customers, err := s.Repo.List(ctx, status, service, skip, int64(limit))
	if err != nil {
		return nil, model.Pagination{}, err
	}
	total, err := s.Repo.Count(ctx, status, service)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	pagination := model.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + int64(limit) - 1) / int64(limit),
	}
	return customers, pagination, nil
}

// Get fetches a single customer by its identifier.
func (s *CustomerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, appErrors.NewNotFound("customer", id)
	}
	customer, err := s.Repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer", id)
	}
	return customer, nil
}

// Update applies a partial update of customer-level fields. Changing the
// email to an address owned by a different customer is a conflict.
func (s *CustomerService) Update(ctx context.Context, id string, patch *model.CustomerPatch) (*model.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, appErrors.NewNotFound("customer", id)
	}

	normalizePatch(patch)
	if msgs := validation.Struct(patch); msgs != nil {
		return nil, &appErrors.ValidationError{Fields: msgs}
	}

	if patch.Email != nil {
		owner, err := s.Repo.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != oid {
			return nil, appErrors.NewConflict("Email already in use by another customer")
		}
	}

	customer, err := s.Repo.ApplyPatch(ctx, oid, patch)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer", id)
	}
	return customer, nil
}

// Delete removes the customer and its entire inquiry history.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return appErrors.NewNotFound("customer", id)
	}
	deleted, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return appErrors.NewNotFound("customer", id)
	}
	return nil
}

// Stats aggregates the totals shown on the staff dashboard.
func (s *CustomerService) Stats(ctx context.Context) (*model.CustomerStats, error) {
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.Repo.ServiceCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &model.CustomerStats{
		TotalCustomers:  total,
		StatusBreakdown: byStatus,
		PopularServices: services,
	}, nil
}

func normalizeSubmission(sub *model.InquirySubmission) {
	sub.FirstName = strings.TrimSpace(sub.FirstName)
	sub.LastName = strings.TrimSpace(sub.LastName)
	sub.Email = model.NormalizeEmail(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Message = strings.TrimSpace(sub.Message)
	if sub.Budget == "" {
		sub.Budget = model.DefaultBudget
	}
	if sub.HowDidYouHear == "" {
		sub.HowDidYouHear = model.DefaultReferralSource
	}
}

func normalizePatch(patch *model.CustomerPatch) {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(patch.FirstName)
	trim(patch.LastName)
	trim(patch.Phone)
	trim(patch.Company)
	trim(patch.Notes)
	if patch.Email != nil {
		*patch.Email = model.NormalizeEmail(*patch.Email)
	}
}
