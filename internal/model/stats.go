package model

// StatusCount is one bucket of the per-status customer breakdown.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// ServiceCount counts inquiries citing one service, flattened across every
// customer's inquiry history (a customer with two inquiries naming the same
// service contributes 2).
type ServiceCount struct {
	Service string `bson:"_id" json:"service"`
	Count   int64  `bson:"count" json:"count"`
}

// CustomerStats aggregates the numbers shown on the staff dashboard.
type CustomerStats struct {
	TotalCustomers  int64          `json:"totalCustomers"`
	StatusBreakdown []StatusCount  `json:"statusBreakdown"`
	PopularServices []ServiceCount `json:"popularServices"`
}

// Pagination describes one page of a customer listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ContactUpdate carries the customer-level fields a returning submission
// overwrites.
type ContactUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Company   string
}
