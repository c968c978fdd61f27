package auth

import "context"

// OrganizationStore persists enrolled organizations.
type OrganizationStore interface {
	Save(ctx context.Context, org Organization) error
	FindByName(ctx context.Context, name string) (Organization, error)
}
