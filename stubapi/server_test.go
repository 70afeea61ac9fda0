package stubapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feedkit/feedkit/posts"
)

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestListPosts(t *testing.T) {
	s := New(Config{}, nil, nil)

	w := doRequest(t, s, "/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got posts.Posts
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 12 {
		t.Errorf("expected 12 seeded posts, got %d", len(got))
	}
	if got[0].ID != 1 || got[11].ID != 12 {
		t.Errorf("seed order broken: first=%d last=%d", got[0].ID, got[11].ID)
	}
}

func TestListPosts_CustomSeed(t *testing.T) {
	custom := posts.Posts{{UserID: 1, ID: 42, Title: "only", Body: "x"}}
	s := New(Config{}, custom, nil)

	w := doRequest(t, s, "/posts")
	var got posts.Posts
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 42 {
		t.Errorf("expected custom seed, got %+v", got)
	}
}

func TestListPosts_InjectedFailure(t *testing.T) {
	s := New(Config{}, nil, nil)

	w := doRequest(t, s, "/posts?fail=500")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}

	// Out-of-range and non-numeric values are ignored.
	w = doRequest(t, s, "/posts?fail=banana")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for invalid fail value, got %d", w.Code)
	}
	w = doRequest(t, s, "/posts?fail=200")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for out-of-range fail value, got %d", w.Code)
	}
}

func TestGetPost(t *testing.T) {
	s := New(Config{}, nil, nil)

	w := doRequest(t, s, "/posts/3")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got posts.Post
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != 3 {
		t.Errorf("expected post 3, got %d", got.ID)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	s := New(Config{}, nil, nil)
	if w := doRequest(t, s, "/posts/999"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetPost_InvalidID(t *testing.T) {
	s := New(Config{}, nil, nil)
	if w := doRequest(t, s, "/posts/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSeedPosts_Shape(t *testing.T) {
	seeded := SeedPosts()
	if len(seeded) != 12 {
		t.Fatalf("expected 12 posts, got %d", len(seeded))
	}
	for i, p := range seeded {
		if p.ID != i+1 {
			t.Errorf("post %d has id %d", i, p.ID)
		}
		if p.Title == "" || p.Body == "" {
			t.Errorf("post %d missing content", i)
		}
	}
}
