package usecase

import (
	"math"
	"strings"

	"github.com/emika-hq/prospect-hub/internal/entity"
)

// ScoreProspect computes the fit of a prospect against profile criteria.
// Each non-empty list among industries, titles, locations, and companySizes
// counts as one check; a check hits when the prospect's field contains any
// entry case-insensitively (companySizes: exact membership). The score is
// round(hits/checks*100), or 0 with no checks. fundingStages and techStack
// are captured on the profile but not scored.
func ScoreProspect(p entity.Prospect, profile entity.Profile) int {
	c := profile.Criteria
	checks, hits := 0, 0

	if len(c.Industries) > 0 {
		checks++
		if containsAny(p.Industry, c.Industries) {
			hits++
		}
	}
	if len(c.Titles) > 0 {
		checks++
		if containsAny(p.Title, c.Titles) {
			hits++
		}
	}
	if len(c.Locations) > 0 {
		checks++
		if containsAny(p.Location, c.Locations) {
			hits++
		}
	}
	if len(c.CompanySizes) > 0 {
		checks++
		for _, size := range c.CompanySizes {
			if p.CompanySize == size {
				hits++
				break
			}
		}
	}

	if checks == 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(checks) * 100))
}

func containsAny(value string, entries []string) bool {
	v := strings.ToLower(value)
	for _, e := range entries {
		if e != "" && strings.Contains(v, strings.ToLower(e)) {
			return true
		}
	}
	return false
}

// RescoreAllUseCase recomputes fit scores for every prospect that references
// a profile. It runs after each profile create or update.
type RescoreAllUseCase struct {
	Prospects ProspectRepositoryInterface
	Profiles  ProfileRepositoryInterface
}

func NewRescoreAllUseCase(prospects ProspectRepositoryInterface, profiles ProfileRepositoryInterface) *RescoreAllUseCase {
	return &RescoreAllUseCase{Prospects: prospects, Profiles: profiles}
}

// Execute rescores in a single collection mutation and skips the durable
// write when no score moved. Prospects with a dangling profileId keep their
// last score untouched.
func (uc *RescoreAllUseCase) Execute() error {
	profiles, err := uc.Profiles.All()
	if err != nil {
		return err
	}
	byID := make(map[string]entity.Profile, len(profiles))
	for _, pr := range profiles {
		byID[pr.ID] = pr
	}

	return uc.Prospects.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		changed := false
		for i := range prospects {
			if prospects[i].ProfileID == "" {
				continue
			}
			profile, ok := byID[prospects[i].ProfileID]
			if !ok {
				continue
			}
			score := ScoreProspect(prospects[i], profile)
			if score != prospects[i].FitScore {
				prospects[i].FitScore = score
				prospects[i].Touch()
				changed = true
			}
		}
		if !changed {
			return nil, ErrNoChange
		}
		return prospects, nil
	})
}
