package models

import "time"

// PortfolioStatus is the closed progress state of a portfolio entry.
type PortfolioStatus string

const (
	PortfolioDraft      PortfolioStatus = "draft"
	PortfolioInProgress PortfolioStatus = "in-progress"
	PortfolioCompleted  PortfolioStatus = "completed"
)

func (s PortfolioStatus) Valid() bool {
	return s == PortfolioDraft || s == PortfolioInProgress || s == PortfolioCompleted
}

// PortfolioEntry is one project shown on the portfolio page.
type PortfolioEntry struct {
	Meta
	Description string          `json:"description"`
	Tech        []string        `json:"tech,omitempty"`
	RepoURL     string          `json:"repo_url,omitempty"`
	DemoURL     string          `json:"demo_url,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Status      PortfolioStatus `json:"status"`
}

// CredentialStatus is the closed validity state of a credential.
type CredentialStatus string

const (
	CredentialValid   CredentialStatus = "valid"
	CredentialExpired CredentialStatus = "expired"
)

func (s CredentialStatus) Valid() bool {
	return s == CredentialValid || s == CredentialExpired
}

// Credential is a certification or qualification with a validity window.
type Credential struct {
	Meta
	Issuer        string           `json:"issuer"`
	Description   string           `json:"description,omitempty"`
	Skills        []string         `json:"skills,omitempty"`
	IssuedAt      time.Time        `json:"issued_at"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	CredentialURL string           `json:"credential_url,omitempty"`
	Status        CredentialStatus `json:"status"`
}

// ExpiredAt reports whether the credential's validity window has closed at
// the given instant. Credentials without an expiry never expire.
func (c *Credential) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// ServiceStatus is the closed availability state of a service listing.
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

func (s ServiceStatus) Valid() bool {
	return s == ServiceActive || s == ServiceInactive
}

// ServiceListing is one offered service on the services page.
type ServiceListing struct {
	Meta
	Description  string        `json:"description"`
	Category     string        `json:"category,omitempty"`
	Deliverables []string      `json:"deliverables,omitempty"`
	PriceRange   string        `json:"price_range,omitempty"`
	Status       ServiceStatus `json:"status"`
}
