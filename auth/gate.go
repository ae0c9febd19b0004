package auth

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// EmailLookup is the slice of the identity provider the gate needs.
type EmailLookup interface {
	PrimaryEmail(ctx context.Context, userID string) (string, error)
}

// Gate is the single capability check consulted before every privileged
// operation: catalog mutation, order status transitions, cross-user order
// listing, contact-message read/delete.
type Gate struct {
	provider EmailLookup
}

func NewGate(provider EmailLookup) *Gate {
	return &Gate{provider: provider}
}

// IsAdmin reports whether the identity may perform privileged operations.
// Membership comes from the ADMIN_USER_IDS allow-list, or failing that from
// the provider-registered email matched against ADMIN_EMAILS. Both lists are
// read from the environment on every call so changes apply without a
// restart. Any failure to reach the provider counts as not admin.
func (g *Gate) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	if inAllowList(os.Getenv("ADMIN_USER_IDS"), userID) {
		return true
	}
	if g.provider == nil {
		return false
	}

	email, err := g.provider.PrimaryEmail(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("auth: admin check failed, denying")
		return false
	}
	return inAllowList(os.Getenv("ADMIN_EMAILS"), email)
}

func inAllowList(csv, value string) bool {
	if value == "" {
		return false
	}
	for _, entry := range strings.Split(csv, ",") {
		if strings.TrimSpace(entry) == value {
			return true
		}
	}
	return false
}
