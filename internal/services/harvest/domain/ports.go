package domain

import (
	"context"
	"time"
)

// HarvesterPort is the public port exposed by the module
type HarvesterPort interface {
	// Harvest starts one invocation over the loosely-typed options bag and
	// returns the record stream. The stream is finite and not restartable
	Harvest(ctx context.Context, options map[string]any) StreamPort
}

// StreamPort is the pull side of one invocation. The producer advances one
// unit of work per pull; Close releases it promptly when the consumer stops
type StreamPort interface {
	// Next blocks for the next record; io.EOF once the stream is exhausted
	Next() (Record, error)
	Close() error
	// Stats returns the emitted count and the duplicate-id skip count so far
	Stats() (emitted int, duplicates int)
}

// CatalogPort lists ranked communities
type CatalogPort interface {
	ListCommunities(ctx context.Context, sort Sort) ([]Community, error)
}

// ContentPort reads posts and comments
type ContentPort interface {
	ListNewPosts(ctx context.Context, community string) PostsResult
	// ListComments returns only comments younger than maxAge
	ListComments(ctx context.Context, postID int64, maxAge time.Duration) CommentsResult
}

// Cleaner sanitizes candidate content before emission
type Cleaner interface {
	// Clean strips markup and escape sequences (post content)
	Clean(s string) string
	// CleanText strips escape sequences only (comment text)
	CleanText(s string) string
}

// Segmenter turns a community slug into a readable label
type Segmenter interface {
	Segment(slug string) string
}
