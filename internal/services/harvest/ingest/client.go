// Package ingest holds adapter shims binding the lemmy client to the
// harvest domain ports
package ingest

import (
	"context"
	"time"

	"lemmyharvest/internal/adapters/ingest/lemmy"
	"lemmyharvest/internal/services/harvest/domain"
)

// catalog adapts lemmy.Client to domain.CatalogPort
type catalog struct {
	c *lemmy.Client
}

// NewCatalog wraps a lemmy client as the community catalog port
func NewCatalog(c *lemmy.Client) domain.CatalogPort { return &catalog{c: c} }

func (a *catalog) ListCommunities(ctx context.Context, sort domain.Sort) ([]domain.Community, error) {
	return a.c.ListCommunities(ctx, sort)
}

// content adapts lemmy.Client to domain.ContentPort
type content struct {
	c *lemmy.Client
}

// NewContent wraps a lemmy client as the post/comment reading port
func NewContent(c *lemmy.Client) domain.ContentPort { return &content{c: c} }

func (a *content) ListNewPosts(ctx context.Context, community string) domain.PostsResult {
	return a.c.ListNewPosts(ctx, community)
}

func (a *content) ListComments(ctx context.Context, postID int64, maxAge time.Duration) domain.CommentsResult {
	return a.c.ListComments(ctx, postID, maxAge)
}
