package domain

// RequestContext carries authenticated caller info when available.
type RequestContext struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
}

// RoleAdmin is the only role allowed to mutate inventory and pricing rules.
const RoleAdmin = "admin"
