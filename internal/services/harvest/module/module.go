// Package module provides the harvest module implementation
package module

import (
	"lemmyharvest/internal/adapters/ingest/lemmy"
	"lemmyharvest/internal/modkit"
	"lemmyharvest/internal/services/harvest/domain"
	"lemmyharvest/internal/services/harvest/ingest"
	"lemmyharvest/internal/services/harvest/service"
)

// Ports defines the harvest module ports
type Ports struct {
	Harvester domain.HarvesterPort
}

// Module implements the harvest module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the harvest module.
// It wires the lemmy adapter and the service using config from deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	client := lemmy.NewClient(opts.Client)

	svc := service.New(
		ingest.NewCatalog(client),
		ingest.NewContent(client),
		ingest.NewCleaner(),
		ingest.NewSegmenter(),
		opts.Service,
	)

	m := &Module{deps: deps}
	m.ports = Ports{Harvester: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "harvest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
