// Package domain holds the core types and ports of the harvest pipeline
package domain

import (
	"time"

	"lemmyharvest/internal/adapters/ingest/lemmy"
)

// SourceDomain identifies the platform on every emitted record
const SourceDomain = "lemmy.world"

// Aliases re-export the adapter shapes the traversal works over, so the
// service layer never imports the adapter directly

// Community is one catalog entry, rank implied by source order
type Community = lemmy.Community

// Post is a top-level submission
type Post = lemmy.Post

// Comment is a reply attached to a post
type Comment = lemmy.Comment

// Sort is a community ranking cadence
type Sort = lemmy.Sort

// Sorts lists the five cadence windows an invocation chooses among
func Sorts() []Sort { return lemmy.Sorts() }

// PostsResult is the outcome of one post listing call
type PostsResult = lemmy.PostsResult

// CommentsResult is the outcome of one comment listing call
type CommentsResult = lemmy.CommentsResult

// Fetch outcome statuses, re-exported for explicit branching
const (
	StatusOK     = lemmy.StatusOK
	StatusEmpty  = lemmy.StatusEmpty
	StatusFailed = lemmy.StatusFailed
)

// Params are the three bounded values one invocation runs under
type Params struct {
	MaxOldness    time.Duration // freshness window
	MaxItems      int           // yield budget
	MinPostLength int           // accepted but not enforced by the engine
}

// Record is the normalized unit emitted to the consumer, derived from
// either a post or a comment. ExternalParentID is set only for comments
type Record struct {
	Content          string `json:"content" validate:"required"`
	CreatedAt        string `json:"created_at" validate:"required"`
	Domain           string `json:"domain" validate:"required"`
	Title            string `json:"title"`
	URL              string `json:"url" validate:"required,url"`
	ExternalID       string `json:"external_id" validate:"required"`
	ExternalParentID string `json:"external_parent_id,omitempty"`
}

// FromComment reports whether the record was derived from a comment
func (r Record) FromComment() bool { return r.ExternalParentID != "" }
