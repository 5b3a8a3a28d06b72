package module

import (
	"testing"
	"time"

	"lemmyharvest/internal/platform/config"
)

func TestFromConfigDefaults(t *testing.T) {
	opts := FromConfig(config.New())
	if opts.Client.CatalogHost != "" || opts.Client.ContentHost != "" {
		t.Fatalf("hosts default at the client, not here: %+v", opts.Client)
	}
	if opts.Client.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", opts.Client.Timeout)
	}
	if opts.Service.CommunitiesToBrowse != 10 || opts.Service.TopCommunities != 10 {
		t.Fatalf("service config = %+v", opts.Service)
	}
	if opts.Service.Seed != 0 {
		t.Fatalf("seed defaults to the clock sentinel, got %d", opts.Service.Seed)
	}
}

func TestFromConfigEnv(t *testing.T) {
	t.Setenv("LEMMY_CONTENT_HOST", "https://example.test")
	t.Setenv("LEMMY_TIMEOUT", "2s")
	t.Setenv("LEMMY_USER_AGENTS", "ua-one, ua-two")
	t.Setenv("HARVEST_COMMUNITIES", "4")
	t.Setenv("HARVEST_SEED", "42")

	opts := FromConfig(config.New())
	if opts.Client.ContentHost != "https://example.test" {
		t.Fatalf("content host = %q", opts.Client.ContentHost)
	}
	if opts.Client.Timeout != 2*time.Second {
		t.Fatalf("timeout = %v", opts.Client.Timeout)
	}
	if len(opts.Client.UserAgents) != 2 || opts.Client.UserAgents[1] != "ua-two" {
		t.Fatalf("user agents = %+v", opts.Client.UserAgents)
	}
	if opts.Service.CommunitiesToBrowse != 4 || opts.Service.Seed != 42 {
		t.Fatalf("service config = %+v", opts.Service)
	}
}
