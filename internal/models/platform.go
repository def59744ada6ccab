package models

// CostType classifies how a platform charges for listings.
type CostType string

const (
	CostFree     CostType = "free"
	CostPaid     CostType = "paid"
	CostFreemium CostType = "freemium"
)

// Platform represents a record in the "platforms" collection:
// one directory entry users can submit backlinks to.
type Platform struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	WebsiteURL      string   `json:"website_url"`
	DomainAuthority int      `json:"domain_authority"`
	CostType        CostType `json:"cost_type"`
	Logo            *string  `json:"logo"`       // File id in the data store
	Categories      []int64  `json:"categories"` // Category ids (many-to-many)
}
