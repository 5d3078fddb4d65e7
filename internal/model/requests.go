package model

// InquirySubmission is the raw web-form payload that creates or updates a
// customer. Budget and HowDidYouHear are defaulted by the service when empty.
type InquirySubmission struct {
	FirstName          string   `json:"firstName" validate:"required,min=2,max=50"`
	LastName           string   `json:"lastName" validate:"required,min=2,max=50"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone" validate:"required,intl_phone"`
	Company            string   `json:"company" validate:"max=100"`
	ServicesInterested []string `json:"servicesInterested" validate:"required,min=1,dive,service_enum"`
	Budget             string   `json:"budget" validate:"omitempty,budget_enum"`
	Message            string   `json:"message" validate:"max=1000"`
	HowDidYouHear      string   `json:"howDidYouHear" validate:"omitempty,source_enum"`
}

// CustomerPatch carries a partial update of customer-level fields. Nil means
// "leave untouched". Inquiries are never updated through a patch.
type CustomerPatch struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName    *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,intl_phone"`
	Company     *string `json:"company" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,status_enum"`
	IsContacted *bool   `json:"isContacted"`
	Notes       *string `json:"notes"`
}

// Empty reports whether the patch changes nothing.
func (p *CustomerPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Company == nil && p.Status == nil &&
		p.IsContacted == nil && p.Notes == nil
}
