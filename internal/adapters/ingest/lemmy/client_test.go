package lemmy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "lemmyharvest/internal/platform/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		CatalogHost: srv.URL,
		ContentHost: srv.URL,
		Timeout:     2 * time.Second,
	})
}

func TestListCommunities(t *testing.T) {
	var gotUA, gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/community/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"communities":[
			{"community":{"name":"asklemmy","title":"Ask Lemmy"}},
			{"community":{"name":"worldnews","title":"World News"}}
		]}`)
	})

	got, err := c.ListCommunities(context.Background(), SortTopDay)
	if err != nil {
		t.Fatalf("ListCommunities: %v", err)
	}
	if len(got) != 2 || got[0].Name != "asklemmy" || got[1].Title != "World News" {
		t.Fatalf("communities = %+v", got)
	}
	if gotQuery != "sort=TopDay&limit=50" {
		t.Fatalf("query = %q", gotQuery)
	}
	found := false
	for _, ua := range defaultUserAgents {
		if ua == gotUA {
			found = true
		}
	}
	if !found {
		t.Fatalf("User-Agent %q not from the fixed pool", gotUA)
	}
}

func TestListCommunitiesNon200(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	got, err := c.ListCommunities(context.Background(), SortTopAll)
	if len(got) != 0 {
		t.Fatalf("expected no communities, got %+v", got)
	}
	if !perr.Transient(err) {
		t.Fatalf("non-200 should be transient, got %v", err)
	}
}

func TestListCommunitiesBadJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"communities": [`)
	})
	_, err := c.ListCommunities(context.Background(), SortTopWeek)
	if !perr.IsCode(err, perr.ErrorCodeDecode) {
		t.Fatalf("want decode error, got %v", err)
	}
}

func TestListNewPosts(t *testing.T) {
	published := time.Now().UTC().Add(-5 * time.Minute).Format(time.RFC3339Nano)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/post/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("community_name"); got != "asklemmy" {
			t.Errorf("community_name = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "New" {
			t.Errorf("sort = %q", got)
		}
		fmt.Fprintf(w, `{"posts":[
			{"post":{"id":11,"name":"A title","body":"A body","creator_id":7,"published":%q,"ap_id":"https://lemmy.world/post/11"}},
			{"post":{"id":12,"creator_id":8,"published":%q,"ap_id":"https://lemmy.world/post/12"}}
		]}`, published, published)
	})

	res := c.ListNewPosts(context.Background(), "asklemmy")
	if res.Status != StatusOK {
		t.Fatalf("status = %v err = %v", res.Status, res.Err)
	}
	if len(res.Posts) != 2 {
		t.Fatalf("posts = %+v", res.Posts)
	}
	first := res.Posts[0]
	if !first.HasTitle || first.Title != "A title" || !first.HasBody || first.Body != "A body" {
		t.Fatalf("first post = %+v", first)
	}
	if first.ExternalID() != "11" || first.URL != "https://lemmy.world/post/11" || first.AuthorID != 7 {
		t.Fatalf("first post identity = %+v", first)
	}
	second := res.Posts[1]
	if second.HasTitle || second.HasBody {
		t.Fatalf("absent title/body must stay absent: %+v", second)
	}
}

func TestListNewPostsEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"posts":[]}`)
	})
	if res := c.ListNewPosts(context.Background(), "ghosttown"); res.Status != StatusEmpty {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestListNewPostsNon200(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	res := c.ListNewPosts(context.Background(), "asklemmy")
	if res.Status != StatusFailed || !perr.Transient(res.Err) {
		t.Fatalf("status = %v err = %v", res.Status, res.Err)
	}
}

func TestListNewPostsBadTimestamp(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"posts":[{"post":{"id":1,"published":"yesterdayish","ap_id":"u"}}]}`)
	})
	res := c.ListNewPosts(context.Background(), "asklemmy")
	if res.Status != StatusFailed || !perr.IsCode(res.Err, perr.ErrorCodeDecode) {
		t.Fatalf("status = %v err = %v", res.Status, res.Err)
	}
}

func TestListCommentsFreshnessFilter(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-10 * time.Minute).Format(time.RFC3339Nano)
	stale := now.Add(-3 * time.Hour).Format(time.RFC3339Nano)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("post_id"); got != "11" {
			t.Errorf("post_id = %q", got)
		}
		fmt.Fprintf(w, `{"comments":[
			{"comment":{"id":101,"post_id":11,"content":"fresh one","creator_id":3,"published":%q,"ap_id":"https://lemmy.world/comment/101"}},
			{"comment":{"id":102,"post_id":11,"content":"stale one","creator_id":4,"published":%q,"ap_id":"https://lemmy.world/comment/102"}}
		]}`, fresh, stale)
	})

	res := c.ListComments(context.Background(), 11, time.Hour)
	if res.Status != StatusOK {
		t.Fatalf("status = %v err = %v", res.Status, res.Err)
	}
	if len(res.Comments) != 1 || res.Comments[0].ID != 101 {
		t.Fatalf("comments = %+v", res.Comments)
	}
	cm := res.Comments[0]
	if cm.ExternalID() != "101" || cm.ExternalParentID() != "11" {
		t.Fatalf("ids = %q %q", cm.ExternalID(), cm.ExternalParentID())
	}
}

func TestListCommentsAllStale(t *testing.T) {
	stale := time.Now().UTC().Add(-3 * time.Hour).Format(time.RFC3339Nano)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"comments":[{"comment":{"id":1,"post_id":2,"content":"x","published":%q,"ap_id":"u"}}]}`, stale)
	})
	if res := c.ListComments(context.Background(), 2, time.Hour); res.Status != StatusEmpty {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestPerCallTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Config{CatalogHost: srv.URL, ContentHost: srv.URL, Timeout: 30 * time.Millisecond})

	_, err := c.ListCommunities(context.Background(), SortTopDay)
	if !perr.Transient(err) {
		t.Fatalf("timeout should surface as transient, got %v", err)
	}
}

func TestParseWhenOffsetless(t *testing.T) {
	got, err := parseWhen("2026-08-26T10:00:00.123456")
	if err != nil {
		t.Fatalf("parseWhen: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("offsetless timestamps are UTC, got %v", got.Location())
	}
	if _, err := parseWhen("not a time"); !perr.IsCode(err, perr.ErrorCodeDecode) {
		t.Fatalf("want decode error, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.CatalogHost != defaultCatalogHost || cfg.ContentHost != defaultContentHost {
		t.Fatalf("hosts = %+v", cfg)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if len(cfg.UserAgents) == 0 {
		t.Fatalf("default UA pool empty")
	}
	if cfg.CommunityPageSize != defaultCommunityPageSize || cfg.PostPageSize != defaultPostPageSize {
		t.Fatalf("page sizes = %+v", cfg)
	}
}
