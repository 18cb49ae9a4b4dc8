package auth

import (
	"strings"

	"github.com/voicehire/voicehire/internal/models"
)

// RoleResolver maps an email to its role. Membership in the recruiter
// allow-list is re-evaluated on every login, so a role change takes effect at
// the next login but never mid-session.
type RoleResolver struct {
	recruiters map[string]struct{}
}

func NewRoleResolver(recruiterEmails []string) *RoleResolver {
	m := make(map[string]struct{}, len(recruiterEmails))
	for _, e := range recruiterEmails {
		e = strings.TrimSpace(strings.ToLower(e))
		if e != "" {
			m[e] = struct{}{}
		}
	}
	return &RoleResolver{recruiters: m}
}

func (r *RoleResolver) RoleFor(email string) models.UserRole {
	if _, ok := r.recruiters[strings.TrimSpace(strings.ToLower(email))]; ok {
		return models.RoleRecruiter
	}
	return models.RoleCandidate
}
