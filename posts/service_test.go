package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedkit/feedkit/httpclient"
	"github.com/feedkit/feedkit/stream"
)

func fixturePosts() Posts {
	return Posts{
		{UserID: 1, ID: 1, Title: "first", Body: "aaa"},
		{UserID: 1, ID: 15, Title: "fifteenth", Body: "bbb"},
		{UserID: 2, ID: 9, Title: "ninth", Body: "ccc"},
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := httpclient.New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return NewService(client, nil), srv
}

func TestFetchPosts_Success(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("expected /posts, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(fixturePosts())
	})

	got, err := stream.Collect(context.Background(), svc.FetchPosts())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Title != "first" {
		t.Errorf("unexpected posts: %+v", got)
	}
}

func TestFetchPosts_InertUntilSubscribed(t *testing.T) {
	var hits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(fixturePosts())
	})

	p := svc.FetchPosts()
	time.Sleep(20 * time.Millisecond)
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("expected no request before Subscribe, got %d", n)
	}

	if _, err := stream.Collect(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected 1 request after Subscribe, got %d", n)
	}
}

func TestFetchPosts_EachActivationIssuesARequest(t *testing.T) {
	var hits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(fixturePosts())
	})

	if _, err := stream.Collect(context.Background(), svc.FetchPosts()); err != nil {
		t.Fatal(err)
	}
	if _, err := stream.Collect(context.Background(), svc.FetchPosts()); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("expected 2 independent requests, got %d", n)
	}
}

func TestFetchPosts_ServerError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	var gotErr error
	var valueFired, completeFired bool
	done := make(chan struct{})

	svc.FetchPosts().Subscribe(context.Background(), stream.Subscriber[Posts]{
		OnValue:    func(Posts) { valueFired = true },
		OnComplete: func() { completeFired = true },
		OnError: func(err error) {
			gotErr = err
			close(done)
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error delivery")
	}

	if !httpclient.IsStatus(gotErr) {
		t.Fatalf("expected status error, got %v", gotErr)
	}
	if httpclient.StatusCode(gotErr) != 500 {
		t.Errorf("expected status 500, got %d", httpclient.StatusCode(gotErr))
	}
	if valueFired || completeFired {
		t.Error("success callbacks must not fire on failure")
	}
}

func TestFetchPosts_UnparseableBody(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	})

	_, err := stream.Collect(context.Background(), svc.FetchPosts())
	if !httpclient.IsDecode(err) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFetchPosts_MalformedShape(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// Decodes as []Post but the elements are missing required fields.
		w.Write([]byte(`[{"foo": "bar"}]`))
	})

	_, err := stream.Collect(context.Background(), svc.FetchPosts())
	if !httpclient.IsDecode(err) {
		t.Errorf("expected decode error for malformed shape, got %v", err)
	}
}

func TestFetchPostsBelow_FiltersAndPreservesOrder(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fixturePosts())
	})

	var got Posts
	var completes int
	done := make(chan struct{})

	svc.FetchPostsBelow(10).Subscribe(context.Background(), stream.Subscriber[Posts]{
		OnValue: func(ps Posts) { got = ps },
		OnComplete: func() {
			completes++
			close(done)
		},
		OnError: func(err error) {
			t.Errorf("unexpected error: %v", err)
			close(done)
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	ids := got.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 9 {
		t.Errorf("expected ids [1 9] in order, got %v", ids)
	}
	if completes != 1 {
		t.Errorf("expected exactly 1 complete, got %d", completes)
	}
}

func TestFetchPostsBelow_DoesNotDuplicateRequests(t *testing.T) {
	var hits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(fixturePosts())
	})

	if _, err := stream.Collect(context.Background(), svc.FetchPostsBelow(10)); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("filter must not trigger extra fetches, got %d", n)
	}
}

func TestWithIDBelow(t *testing.T) {
	pred := WithIDBelow(10)
	if !pred(Post{ID: 9}) || pred(Post{ID: 10}) || pred(Post{ID: 15}) {
		t.Error("predicate must keep ids strictly below the limit")
	}
}

func TestPosts_IDs(t *testing.T) {
	ids := fixturePosts().IDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 15 || ids[2] != 9 {
		t.Errorf("unexpected ids: %v", ids)
	}
}
