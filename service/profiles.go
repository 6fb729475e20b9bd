package service

import (
	"context"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/model"
	"github.com/skillsnap/portfolio/store"
)

// Profiles extends the generic entity service with the operation that
// resolves the calling account's own profile.
type Profiles struct {
	*Entity[model.Profile]
	profiles store.Store[model.Profile]
}

// NewProfiles creates the profile service.
func NewProfiles(cfg EntityConfig[model.Profile]) *Profiles {
	return &Profiles{
		Entity:   NewEntity(cfg),
		profiles: cfg.Store,
	}
}

// MyProfile returns the profile linked to the calling account by its
// AccountID foreign key. Requires authentication; a caller with no
// claimed profile gets not-found.
func (s *Profiles) MyProfile(ctx context.Context) (model.Profile, error) {
	var zero model.Profile

	id, err := s.cfg.Gate.Check(ctx, auth.Authenticated)
	if err != nil {
		return zero, err
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, p := range profiles {
		if p.AccountID != "" && p.AccountID == id.Subject {
			return p, nil
		}
	}
	return zero, store.ErrNotFound
}
