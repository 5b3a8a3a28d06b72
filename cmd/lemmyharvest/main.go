package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"

	"lemmyharvest/internal/modkit"
	"lemmyharvest/internal/modkit/module"
	"lemmyharvest/internal/platform/config"
	"lemmyharvest/internal/platform/logger"

	harvestmod "lemmyharvest/internal/services/harvest/module"
	"lemmyharvest/internal/services/harvest/service"
)

func main() {
	// optional .env for local runs; absence is fine
	_ = godotenv.Load()

	l := logger.Get()
	root := config.New()

	var (
		fMaxOldness = flag.Int("max-oldness-seconds", 0, "freshness window in seconds (default 3600)")
		fMaxItems   = flag.Int("max-items", -1, "yield budget for this invocation (default 100)")
		fMinLength  = flag.Int("min-post-length", 0, "minimum post length (default 10)")
	)
	flag.Parse()

	// the options bag carries only keys the caller actually set
	options := map[string]any{}
	if *fMaxOldness > 0 {
		options[service.KeyMaxOldnessSeconds] = *fMaxOldness
	}
	if *fMaxItems >= 0 {
		options[service.KeyMaximumItems] = *fMaxItems
	}
	if *fMinLength > 0 {
		options[service.KeyMinPostLength] = *fMinLength
	}

	deps := modkit.Deps{Cfg: root, Log: *l}

	hm := harvestmod.New(deps)
	module.Register(hm.Name(), hm.Ports())

	ports, ok := module.PortsAs[harvestmod.Ports](hm.Name())
	if !ok {
		l.Fatal().Str("module", hm.Name()).Msg("module ports not registered")
	}
	stream := ports.Harvester.Harvest(context.Background(), options)
	defer func() { _ = stream.Close() }()

	enc := json.NewEncoder(os.Stdout)
	for {
		rec, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			l.Error().Err(err).Msg("harvest stream ended with error")
			break
		}
		if err := enc.Encode(rec); err != nil {
			l.Fatal().Err(err).Msg("failed to write record")
		}
	}

	emitted, duplicates := stream.Stats()
	l.Info().Int("emitted", emitted).Int("duplicates", duplicates).Msg("harvest complete")
}
