// Package lemmy is the read-only HTTP adapter for the Lemmy v3 JSON API.
// Three endpoints are consumed: the community catalog, per-community new
// posts, and per-post comments. Every call is one GET with a randomized
// User-Agent and a per-call timeout; non-200 answers surface as
// StatusFailed with an Unavailable error, never as data
package lemmy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	perr "lemmyharvest/internal/platform/errors"
	"lemmyharvest/internal/platform/logger"
	pstrings "lemmyharvest/internal/platform/strings"
)

const (
	defaultCatalogHost       = "https://lemmy.ml"
	defaultContentHost       = "https://lemmy.world"
	defaultTimeout           = 5 * time.Second
	defaultCommunityPageSize = 50
	defaultPostPageSize      = 100
)

// defaultUserAgents is the fixed pool a request picks from at random
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0",
}

// Config carries every knob the client needs; zero fields take defaults.
// Passing it in explicitly keeps the process free of hidden global state
type Config struct {
	CatalogHost       string        // host serving the community catalog
	ContentHost       string        // host serving posts and comments
	Timeout           time.Duration // per-call budget, connection teardown included
	UserAgents        []string      // pool to randomize the User-Agent from
	CommunityPageSize int
	PostPageSize      int
}

func (c Config) withDefaults() Config {
	if c.CatalogHost == "" {
		c.CatalogHost = defaultCatalogHost
	}
	if c.ContentHost == "" {
		c.ContentHost = defaultContentHost
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.UserAgents = pstrings.IfEmpty(c.UserAgents, defaultUserAgents)
	if c.CommunityPageSize <= 0 {
		c.CommunityPageSize = defaultCommunityPageSize
	}
	if c.PostPageSize <= 0 {
		c.PostPageSize = defaultPostPageSize
	}
	return c
}

// Client issues the three read calls. Safe for concurrent use
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient constructs a Client from cfg, filling in defaults
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg: cfg,
		// the per-call context carries the timeout so a consumer cancel
		// also tears the connection down
		http: &http.Client{},
	}
}

// ListCommunities fetches the ranked community catalog for sort.
// A transport failure or non-200 answer yields an empty slice and an
// Unavailable error; callers treat that as nothing available now
func (c *Client) ListCommunities(ctx context.Context, sort Sort) ([]Community, error) {
	u := fmt.Sprintf("%s/api/v3/community/list?sort=%s&limit=%d", c.cfg.CatalogHost, sort, c.cfg.CommunityPageSize)
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var wire communityListBody
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "lemmy: decode community list")
	}
	out := make([]Community, 0, len(wire.Communities))
	for _, v := range wire.Communities {
		out = append(out, Community{Name: v.Community.Name, Title: v.Community.Title})
	}
	return out, nil
}

// ListNewPosts fetches the newest posts of a community
func (c *Client) ListNewPosts(ctx context.Context, community string) PostsResult {
	u := fmt.Sprintf(
		"%s/api/v3/post/list?community_name=%s&sort=New&limit=%d",
		c.cfg.ContentHost, url.QueryEscape(community), c.cfg.PostPageSize,
	)
	body, err := c.get(ctx, u)
	if err != nil {
		return PostsResult{Status: StatusFailed, Err: err}
	}
	var wire postListBody
	if err := json.Unmarshal(body, &wire); err != nil {
		return PostsResult{Status: StatusFailed, Err: perr.Wrapf(err, perr.ErrorCodeDecode, "lemmy: decode post list")}
	}
	if len(wire.Posts) == 0 {
		return PostsResult{Status: StatusEmpty}
	}
	posts := make([]Post, 0, len(wire.Posts))
	for _, v := range wire.Posts {
		p, err := v.Post.parse()
		if err != nil {
			return PostsResult{Status: StatusFailed, Err: err}
		}
		posts = append(posts, p)
	}
	return PostsResult{Status: StatusOK, Posts: posts}
}

// ListComments fetches the flat comment list of a post and keeps only
// comments younger than maxAge
func (c *Client) ListComments(ctx context.Context, postID int64, maxAge time.Duration) CommentsResult {
	u := fmt.Sprintf("%s/api/v3/comment/list?post_id=%d", c.cfg.ContentHost, postID)
	body, err := c.get(ctx, u)
	if err != nil {
		return CommentsResult{Status: StatusFailed, Err: err}
	}
	var wire commentListBody
	if err := json.Unmarshal(body, &wire); err != nil {
		return CommentsResult{Status: StatusFailed, Err: perr.Wrapf(err, perr.ErrorCodeDecode, "lemmy: decode comment list")}
	}
	now := time.Now().UTC()
	fresh := make([]Comment, 0, len(wire.Comments))
	for _, v := range wire.Comments {
		cm, err := v.Comment.parse()
		if err != nil {
			return CommentsResult{Status: StatusFailed, Err: err}
		}
		if now.Sub(cm.Published) < maxAge {
			fresh = append(fresh, cm)
		}
	}
	if len(fresh) == 0 {
		return CommentsResult{Status: StatusEmpty}
	}
	return CommentsResult{Status: StatusOK, Comments: fresh}
}

// get performs one GET and returns the body on a 200 answer.
// The response body is closed on every path, timeout and error included
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "lemmy: build request")
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		logger.C(ctx).Debug().Str("url", url).Err(err).Msg("lemmy: request failed")
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "lemmy: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.C(ctx).Debug().Str("url", url).Int("status", resp.StatusCode).Msg("lemmy: non-200 answer")
		return nil, perr.Unavailablef("lemmy: unexpected status %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "lemmy: read body")
	}
	return body, nil
}

func (c *Client) userAgent() string {
	pool := c.cfg.UserAgents
	return pool[rand.Intn(len(pool))]
}
