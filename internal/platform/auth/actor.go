package auth

import (
	"context"

	"github.com/medibook/medibook/internal/access"
)

// ActorFromContext builds the explicit actor handed to core services from
// the identity the JWT middleware stored on the request context.
func ActorFromContext(ctx context.Context) access.Actor {
	return access.Actor{
		ID:    UserIDFromContext(ctx),
		Email: EmailFromContext(ctx),
		Role:  RoleFromContext(ctx),
	}
}
