package lemmy

import (
	"strconv"
	"time"

	perr "lemmyharvest/internal/platform/errors"
	pstrings "lemmyharvest/internal/platform/strings"
)

// Sort is a community ranking cadence accepted by the community list endpoint
type Sort string

// The five cadence windows the harvester samples across
const (
	SortTopDay   Sort = "TopDay"
	SortTopWeek  Sort = "TopWeek"
	SortTopMonth Sort = "TopMonth"
	SortTopYear  Sort = "TopYear"
	SortTopAll   Sort = "TopAll"
)

// Sorts lists every cadence window in rank order
func Sorts() []Sort {
	return []Sort{SortTopDay, SortTopWeek, SortTopMonth, SortTopYear, SortTopAll}
}

// Status classifies a fetch outcome so callers branch explicitly instead of
// treating suppressed errors as control flow
type Status uint8

const (
	// StatusOK means the endpoint returned data
	StatusOK Status = iota
	// StatusEmpty means the endpoint answered but had nothing usable
	StatusEmpty
	// StatusFailed means the call did not produce data; Err carries the cause
	StatusFailed
)

// Community is one entry of the community catalog, rank implied by slice order
type Community struct {
	Name  string
	Title string
}

// Post is a top-level submission within a community
type Post struct {
	ID        int64
	URL       string
	AuthorID  int64
	Published time.Time
	Title     string // empty when the submission has no title
	Body      string // empty when the submission has no body
	HasTitle  bool
	HasBody   bool
}

// ExternalID returns the platform id as the opaque string emitted downstream
func (p Post) ExternalID() string { return strconv.FormatInt(p.ID, 10) }

// Comment is a reply attached to a post; nesting is not modeled, the API
// hands back the whole flat list for a post
type Comment struct {
	ID        int64
	PostID    int64
	URL       string
	AuthorID  int64
	Published time.Time
	Text      string
}

// ExternalID returns the platform id as the opaque string emitted downstream
func (c Comment) ExternalID() string { return strconv.FormatInt(c.ID, 10) }

// ExternalParentID returns the parent post id as an opaque string
func (c Comment) ExternalParentID() string { return strconv.FormatInt(c.PostID, 10) }

// PostsResult is the outcome of one post listing call
type PostsResult struct {
	Status Status
	Posts  []Post
	Err    error
}

// CommentsResult is the outcome of one comment listing call, already
// filtered to the freshness window
type CommentsResult struct {
	Status   Status
	Comments []Comment
	Err      error
}

// Wire envelopes, matching the v3 API response shapes

type communityListBody struct {
	Communities []communityView `json:"communities"`
}

type communityView struct {
	Community communityWire `json:"community"`
}

type communityWire struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type postListBody struct {
	Posts []postView `json:"posts"`
}

type postView struct {
	Post postWire `json:"post"`
}

type postWire struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	Body      *string `json:"body"`
	CreatorID int64   `json:"creator_id"`
	Published string  `json:"published"`
	ApID      string  `json:"ap_id"`
}

type commentListBody struct {
	Comments []commentView `json:"comments"`
}

type commentView struct {
	Comment commentWire `json:"comment"`
}

type commentWire struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	Content   string `json:"content"`
	CreatorID int64  `json:"creator_id"`
	Published string `json:"published"`
	ApID      string `json:"ap_id"`
}

// parseWhen accepts the ISO-8601 forms the platform emits, both with an
// explicit zone and the bare UTC form older instances produce
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, perr.Decodef("lemmy: unparsable timestamp %q", s)
}

func (w postWire) parse() (Post, error) {
	when, err := parseWhen(w.Published)
	if err != nil {
		return Post{}, err
	}
	return Post{
		ID:        w.ID,
		URL:       w.ApID,
		AuthorID:  w.CreatorID,
		Published: when,
		Title:     pstrings.Deref(w.Name),
		Body:      pstrings.Deref(w.Body),
		HasTitle:  w.Name != nil,
		HasBody:   w.Body != nil,
	}, nil
}

func (w commentWire) parse() (Comment, error) {
	when, err := parseWhen(w.Published)
	if err != nil {
		return Comment{}, err
	}
	return Comment{
		ID:        w.ID,
		PostID:    w.PostID,
		URL:       w.ApID,
		AuthorID:  w.CreatorID,
		Published: when,
		Text:      w.Content,
	}, nil
}
