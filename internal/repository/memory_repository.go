package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brightpixel/agency-backend/internal/model"
)

// MemoryCustomerRepository is an in-memory CustomerRepositoryInterface used
// in tests and local experiments. It mirrors the MongoDB implementation's
// contract, including the (nil, nil) not-found convention.
type MemoryCustomerRepository struct {
	mu        sync.Mutex
	customers []model.Customer
	epoch     time.Time
	ticks     int
}

// NewMemoryCustomerRepository returns an empty in-memory store.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{epoch: time.Now().UTC()}
}

// next returns a strictly increasing timestamp so creation order is total.
func (r *MemoryCustomerRepository) next() time.Time {
	r.ticks++
	return r.epoch.Add(time.Duration(r.ticks) * time.Millisecond)
}

func (r *MemoryCustomerRepository) FindByEmail(_ context.Context, email string) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].Email == email {
			c := r.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID == id {
			c := r.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) Insert(_ context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	now := r.next()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.customers = append(r.customers, *c)
	return nil
}

func (r *MemoryCustomerRepository) UpsertInquiry(_ context.Context, email string, contact model.ContactUpdate, inquiry model.Inquiry) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].Email != email {
			continue
		}
		c := &r.customers[i]
		c.FirstName = contact.FirstName
		c.LastName = contact.LastName
		c.Phone = contact.Phone
		c.Company = contact.Company
		c.Inquiries = append(c.Inquiries, inquiry)
		c.UpdatedAt = r.next()
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) ApplyPatch(_ context.Context, id primitive.ObjectID, patch *model.CustomerPatch) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID != id {
			continue
		}
		c := &r.customers[i]
		if patch.FirstName != nil {
			c.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			c.LastName = *patch.LastName
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
		if patch.Company != nil {
			c.Company = *patch.Company
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		if patch.IsContacted != nil {
			c.IsContacted = *patch.IsContacted
		}
		if patch.Notes != nil {
			c.Notes = *patch.Notes
		}
		c.UpdatedAt = r.next()
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryCustomerRepository) match(c *model.Customer, status, service string) bool {
	if status != "" && c.Status != status {
		return false
	}
	if service != "" && !citesService(c, service) {
		return false
	}
	return true
}

func citesService(c *model.Customer, service string) bool {
	for _, inq := range c.Inquiries {
		for _, s := range inq.ServicesInterested {
			if s == service {
				return true
			}
		}
	}
	return false
}

func (r *MemoryCustomerRepository) List(_ context.Context, status, service string, skip, limit int64) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := []model.Customer{}
	for i := range r.customers {
		if r.match(&r.customers[i], status, service) {
			filtered = append(filtered, r.customers[i])
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if skip >= int64(len(filtered)) {
		return []model.Customer{}, nil
	}
	filtered = filtered[skip:]
	if limit < int64(len(filtered)) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *MemoryCustomerRepository) Count(_ context.Context, status, service string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.customers {
		if r.match(&r.customers[i], status, service) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryCustomerRepository) FindAll(_ context.Context) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *MemoryCustomerRepository) FindByEmails(_ context.Context, emails []string) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[e] = true
	}
	out := []model.Customer{}
	for i := range r.customers {
		if want[r.customers[i].Email] {
			out = append(out, r.customers[i])
		}
	}
	return out, nil
}

func (r *MemoryCustomerRepository) FindByService(_ context.Context, service string) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Customer{}
	for i := range r.customers {
		if citesService(&r.customers[i], service) {
			out = append(out, r.customers[i])
		}
	}
	return out, nil
}

func (r *MemoryCustomerRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []model.Customer{}
	for i := range r.customers {
		if want[r.customers[i].ID] {
			out = append(out, r.customers[i])
		}
	}
	return out, nil
}

func (r *MemoryCustomerRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}

func (r *MemoryCustomerRepository) CountByStatus(_ context.Context) ([]model.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for i := range r.customers {
		counts[r.customers[i].Status]++
	}
	out := []model.StatusCount{}
	for status, n := range counts {
		out = append(out, model.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *MemoryCustomerRepository) ServiceCounts(_ context.Context) ([]model.ServiceCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for i := range r.customers {
		for _, inq := range r.customers[i].Inquiries {
			for _, s := range inq.ServicesInterested {
				counts[s]++
			}
		}
	}
	out := []model.ServiceCount{}
	for service, n := range counts {
		out = append(out, model.ServiceCount{Service: service, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Service < out[j].Service
	})
	return out, nil
}
