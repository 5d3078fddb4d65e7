package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer statuses follow the pipeline a lead moves through.
const (
	StatusNew           = "new"
	StatusContacted     = "contacted"
	StatusInProgress    = "in-progress"
	StatusConverted     = "converted"
	StatusNotInterested = "not-interested"
)

// Statuses lists every valid customer status.
var Statuses = []string{
	StatusNew,
	StatusContacted,
	StatusInProgress,
	StatusConverted,
	StatusNotInterested,
}

// Services is the closed set of offerings a customer can inquire about.
var Services = []string{
	"Search Engine Optimization (SEO)",
	"Social Media Marketing (SMM)",
	"Web Design & Development",
	"Content Creation",
	"Pay-Per-Click (PPC) Advertising",
	"Email Marketing",
	"Branding & Strategy",
	"Analytics & Reporting",
	"Google Business Profile Setup",
	"Influencer Marketing",
}

// Budgets are the bands offered on the inquiry form.
var Budgets = []string{
	"Under $500",
	"$1,000 - $5,000",
	"$5,000 - $10,000",
	"$10,000 - $25,000",
	"Over $25,000",
	"Not sure yet",
}

// ReferralSources answer "how did you hear about us".
var ReferralSources = []string{
	"Google Search",
	"Social Media",
	"Referral",
	"Advertisement",
	"Other",
}

const (
	DefaultBudget         = "Not sure yet"
	DefaultReferralSource = "Other"
)

// Inquiry is a single service request embedded in a customer's history.
// It has no identity of its own and is never edited after creation.
type Inquiry struct {
	ServicesInterested []string  `bson:"servicesInterested" json:"servicesInterested"`
	Budget             string    `bson:"budget" json:"budget"`
	Message            string    `bson:"message,omitempty" json:"message,omitempty"`
	HowDidYouHear      string    `bson:"howDidYouHear" json:"howDidYouHear"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

// Customer is the persistent entity, unique by email. Contact fields always
// reflect the most recent submission; inquiries are append-only in submission
// order.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Inquiries   []Inquiry          `bson:"inquiries" json:"inquiries"`
	IsContacted bool               `bson:"isContacted" json:"isContacted"`
	Status      string             `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FullName concatenates first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DisplayName picks the name used to address the customer in an email:
// full name, else first name, else the local part of the email address.
func (c *Customer) DisplayName() string {
	if name := c.FullName(); name != "" {
		return name
	}
	if at := strings.Index(c.Email, "@"); at > 0 {
		return c.Email[:at]
	}
	return c.Email
}

// NormalizeEmail applies the canonical form used as the unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidStatus reports whether s is a known customer status.
func ValidStatus(s string) bool { return contains(Statuses, s) }

// ValidService reports whether s is a known service offering.
func ValidService(s string) bool { return contains(Services, s) }

// ValidBudget reports whether s is a known budget band.
func ValidBudget(s string) bool { return contains(Budgets, s) }

// ValidReferralSource reports whether s is a known referral source.
func ValidReferralSource(s string) bool { return contains(ReferralSources, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
