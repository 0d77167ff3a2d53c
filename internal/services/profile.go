package services

import "leadreach/outreach-assistant/internal/config"

// SearchProfile holds the per-mode search behaviour. Limits are fixed per
// mode and deliberately not configurable.
type SearchProfile struct {
	Mode          string
	ResultLimit   int
	FillMissing   bool
	NetworkDepths []string
}

func ProfileFor(mode string) SearchProfile {
	if mode == config.SearchModeDirect {
		return SearchProfile{
			Mode:        config.SearchModeDirect,
			ResultLimit: 10,
			FillMissing: true,
		}
	}
	return SearchProfile{
		Mode:          config.SearchModeSession,
		ResultLimit:   1,
		NetworkDepths: []string{"F", "O"},
	}
}
