// Package service implements the harvest traversal: community sampling,
// post/comment walking under the freshness window, dedup, and the yield
// budget that bounds one invocation
package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "lemmyharvest/internal/platform/errors"
	"lemmyharvest/internal/platform/logger"
	pstrings "lemmyharvest/internal/platform/strings"
	"lemmyharvest/internal/services/harvest/domain"
)

// nowFn is a seam for tests
var nowFn = time.Now

// Config holds the traversal knobs
type Config struct {
	// CommunitiesToBrowse is the size of the uniform draw over the catalog
	CommunitiesToBrowse int
	// TopCommunities is the length of the top-ranked prefix for the second draw
	TopCommunities int
	// Seed fixes the sampler RNG; 0 seeds from the clock
	Seed int64
}

// Service implements domain.HarvesterPort
type Service struct {
	Catalog domain.CatalogPort
	Content domain.ContentPort
	Clean   domain.Cleaner
	Segment domain.Segmenter
	Cfg     Config
}

// New constructs the harvest service
func New(catalog domain.CatalogPort, content domain.ContentPort, clean domain.Cleaner, seg domain.Segmenter, cfg Config) *Service {
	if catalog == nil || content == nil {
		panic("harvest.Service requires catalog and content ports")
	}
	if clean == nil || seg == nil {
		panic("harvest.Service requires cleaner and segmenter ports")
	}
	if cfg.CommunitiesToBrowse <= 0 {
		cfg.CommunitiesToBrowse = 10
	}
	if cfg.TopCommunities <= 0 {
		cfg.TopCommunities = 10
	}
	return &Service{Catalog: catalog, Content: content, Clean: clean, Segment: seg, Cfg: cfg}
}

// Harvest starts one invocation and returns its record stream. All session
// state (seen ids, spent budget) is owned by the stream and discarded with it
func (s *Service) Harvest(ctx context.Context, options map[string]any) domain.StreamPort {
	ctx = logger.WithRun(ctx, uuid.NewString())
	ctx, cancel := context.WithCancel(ctx)
	st := newStream(cancel)
	go s.run(ctx, st, options)
	return st
}

// budgetSpent is the internal signal that stops traversal cleanly
var budgetSpent = perr.BudgetExhaustedf("yield budget spent")

func (s *Service) run(ctx context.Context, st *stream, options map[string]any) {
	defer close(st.ch)
	log := logger.C(ctx)

	// invocation-level catch-all: whatever goes wrong, records already
	// pulled stand and the consumer sees a clean end of stream
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("harvest: traversal panicked, ending stream")
		}
	}()

	params := ResolveParams(options)
	log.Info().
		Dur("max_oldness", params.MaxOldness).
		Int("max_items", params.MaxItems).
		Int("min_post_length", params.MinPostLength).
		Msg("harvest: input parameters")

	seed := s.Cfg.Seed
	if seed == 0 {
		seed = nowFn().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sort := randomSort(rng, domain.Sorts())
	communities, err := s.Catalog.ListCommunities(ctx, sort)
	if err != nil {
		// nothing available now, not a fatal condition
		log.Warn().Str("sort", string(sort)).Err(err).Msg("harvest: community catalog unavailable")
		return
	}
	if len(communities) == 0 {
		log.Info().Str("sort", string(sort)).Msg("harvest: community catalog empty")
		return
	}

	selected := sampleCommunities(rng, communities, s.Cfg.CommunitiesToBrowse, s.Cfg.TopCommunities)
	log.Info().
		Str("sort", string(sort)).
		Int("catalog", len(communities)).
		Str("communities", joinTitles(selected)).
		Msg("harvest: selected communities")

	tr := newTracker(params.MaxItems)
	defer func() {
		emitted, dups := st.Stats()
		log.Info().
			Int("emitted", emitted).
			Int("duplicates", dups).
			Int("communities", len(selected)).
			Msg("harvest: stream finished")
	}()

	for _, comm := range selected {
		if tr.exhausted() {
			log.Info().Int("emitted", tr.emitted()).Msg("harvest: budget reached, stopping communities")
			return
		}
		if err := s.browseCommunity(ctx, st, tr, params, comm); err != nil {
			switch {
			case perr.IsCode(err, perr.ErrorCodeBudgetExhausted):
				log.Info().Int("emitted", tr.emitted()).Msg("harvest: budget reached, stopping communities")
				return
			case ctx.Err() != nil:
				log.Debug().Msg("harvest: consumer gone, stopping")
				return
			default:
				// malformed response or other unexpected condition; partial
				// results already yielded are preserved
				log.Error().Str("community", comm.Name).Err(err).Msg("harvest: traversal ended early")
				st.fail(ctx, err)
				return
			}
		}
	}
}

// browseCommunity walks one community's posts and their comments. It
// returns budgetSpent as soon as the tracker reports exhaustion and a
// non-transient error for conditions fatal to the whole invocation
func (s *Service) browseCommunity(
	ctx context.Context,
	st *stream,
	tr *tracker,
	params domain.Params,
	comm domain.Community,
) error {
	log := logger.C(ctx)
	log.Debug().Str("community", comm.Name).Msg("harvest: fetching posts")

	res := s.Content.ListNewPosts(ctx, comm.Name)
	switch res.Status {
	case domain.StatusEmpty:
		return nil
	case domain.StatusFailed:
		if perr.Transient(res.Err) {
			log.Debug().Str("community", comm.Name).Err(res.Err).Msg("harvest: posts unavailable, skipping community")
			return nil
		}
		return res.Err
	}

	label := s.Segment.Segment(comm.Name)

	for i := range res.Posts {
		post := res.Posts[i]
		if tr.exhausted() {
			return budgetSpent
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.fresh(params, post.Published) {
			s.emitPost(ctx, st, tr, label, post)
		}

		// comments are fetched whether or not the post itself qualified;
		// freshness filtering happened inside the listing call
		cres := s.Content.ListComments(ctx, post.ID, params.MaxOldness)
		switch cres.Status {
		case domain.StatusEmpty:
			continue
		case domain.StatusFailed:
			if perr.Transient(cres.Err) {
				log.Debug().Int64("post", post.ID).Err(cres.Err).Msg("harvest: comments unavailable, next post")
				continue
			}
			return cres.Err
		}
		for j := range cres.Comments {
			if tr.exhausted() {
				return budgetSpent
			}
			s.emitComment(ctx, st, tr, post, cres.Comments[j])
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
	return nil
}

// emitPost builds and emits one post-derived record, subject to the dedup
// and budget gates
func (s *Service) emitPost(ctx context.Context, st *stream, tr *tracker, label string, post domain.Post) {
	id := post.ExternalID()
	if tr.seenID(id) {
		st.duplicates.Add(1)
		return
	}
	if !tr.shouldEmit(id) {
		return
	}

	// candidate content is label + body + title in that fixed order; the
	// title lands in the content as well as in the title field
	content := label
	if post.HasBody {
		content += ". " + post.Body
	}
	if post.HasTitle {
		content += post.Title
	}
	content = s.Clean.Clean(content)

	rec := domain.Record{
		Content:    content,
		CreatedAt:  post.Published.UTC().Format(time.RFC3339),
		Domain:     domain.SourceDomain,
		Title:      post.Title,
		URL:        post.URL,
		ExternalID: id,
	}
	if err := domain.CheckRecord(rec); err != nil {
		logger.C(ctx).Warn().Str("id", id).Err(err).Msg("harvest: dropping post record")
		return
	}
	if st.send(ctx, rec) {
		tr.record(id)
		logger.C(ctx).Debug().Str("id", id).Str("content", pstrings.TruncateUTF8(content, 120)).
			Msg("harvest: new post record")
	}
}

// emitComment builds and emits one comment-derived record; the title is
// inherited from the parent post
func (s *Service) emitComment(ctx context.Context, st *stream, tr *tracker, post domain.Post, cm domain.Comment) {
	id := cm.ExternalID()
	if tr.seenID(id) {
		st.duplicates.Add(1)
		return
	}
	if !tr.shouldEmit(id) {
		return
	}

	rec := domain.Record{
		Content:          s.Clean.CleanText(cm.Text),
		CreatedAt:        cm.Published.UTC().Format(time.RFC3339),
		Domain:           domain.SourceDomain,
		Title:            post.Title,
		URL:              cm.URL,
		ExternalID:       id,
		ExternalParentID: cm.ExternalParentID(),
	}
	if err := domain.CheckRecord(rec); err != nil {
		logger.C(ctx).Warn().Str("id", id).Err(err).Msg("harvest: dropping comment record")
		return
	}
	if st.send(ctx, rec) {
		tr.record(id)
		logger.C(ctx).Debug().Str("id", id).Int64("post", cm.PostID).Msg("harvest: new comment record")
	}
}

// fresh applies the freshness window against the seam clock
func (s *Service) fresh(params domain.Params, published time.Time) bool {
	return nowFn().UTC().Sub(published) < params.MaxOldness
}

// joinTitles renders the selected community titles as one comma-joined line
func joinTitles(cs []domain.Community) string {
	titles := make([]string, 0, len(cs))
	for _, c := range cs {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, ", ")
}
