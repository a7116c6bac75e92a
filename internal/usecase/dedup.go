package usecase

import (
	"strings"

	"github.com/emika-hq/prospect-hub/internal/entity"
)

// EmailSet decides whether an incoming prospect duplicates a known one.
// Email identity is the sole key; there is no fuzzy matching on names or
// phone numbers.
type EmailSet struct {
	seen map[string]struct{}
}

// NewEmailSet seeds the set with every non-empty stored email, case-folded.
func NewEmailSet(existing []entity.Prospect) *EmailSet {
	s := &EmailSet{seen: make(map[string]struct{}, len(existing))}
	for _, p := range existing {
		if p.Email != "" {
			s.seen[strings.ToLower(p.Email)] = struct{}{}
		}
	}
	return s
}

// Admit classifies a candidate email. An empty email is always admitted and
// never recorded. A known email is a duplicate. A new email is admitted and
// recorded, so later candidates of the same batch dedup against it.
func (s *EmailSet) Admit(email string) bool {
	if email == "" {
		return true
	}
	key := strings.ToLower(email)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains reports whether an email is already known, without admitting it.
func (s *EmailSet) Contains(email string) bool {
	if email == "" {
		return false
	}
	_, ok := s.seen[strings.ToLower(email)]
	return ok
}
