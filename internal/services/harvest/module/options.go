package module

import (
	"time"

	"lemmyharvest/internal/adapters/ingest/lemmy"
	"lemmyharvest/internal/platform/config"
	"lemmyharvest/internal/services/harvest/service"
)

// Options holds configuration options for the harvest module
type Options struct {
	Client  lemmy.Config
	Service service.Config
}

// FromConfig reads the harvest options from config. The client reads
// LEMMY_*, the traversal reads HARVEST_*
func FromConfig(cfg config.Conf) Options {
	lc := cfg.Prefix("LEMMY_")
	hv := cfg.Prefix("HARVEST_")
	return Options{
		Client: lemmy.Config{
			CatalogHost:       lc.MayString("CATALOG_HOST", ""),
			ContentHost:       lc.MayString("CONTENT_HOST", ""),
			Timeout:           lc.MayDuration("TIMEOUT", 5*time.Second),
			UserAgents:        lc.MayCSV("USER_AGENTS", nil),
			CommunityPageSize: lc.MayInt("COMMUNITY_PAGE", 0),
			PostPageSize:      lc.MayInt("POST_PAGE", 0),
		},
		Service: service.Config{
			CommunitiesToBrowse: hv.MayInt("COMMUNITIES", 10),
			TopCommunities:      hv.MayInt("TOP_COMMUNITIES", 10),
			Seed:                int64(hv.MayInt("SEED", 0)),
		},
	}
}
