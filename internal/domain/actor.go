package domain

import "time"

// ActorRole enumerates API-level roles. Permission checks are a precondition
// enforced at the transport layer; the lifecycle core never consults roles.
type ActorRole string

const (
	ActorRoleAgent ActorRole = "AGENT"
	ActorRoleAdmin ActorRole = "ADMIN"
)

// Actor is a tenant-scoped staff login for the API surface. Transition records
// reference actors only by opaque id.
type Actor struct {
	ID           string
	TenantID     string
	Email        string
	DisplayName  string
	Role         ActorRole
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
