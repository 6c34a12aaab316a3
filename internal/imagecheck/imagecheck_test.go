package imagecheck

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/moved.jpg", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok.jpg", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/gone.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/error.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestIsReachable(t *testing.T) {
	server := newFixtureServer(t)

	// A server that is no longer listening, for transport failures
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	checker := NewChecker(2*time.Second, 4)

	testCases := []struct {
		name string
		url  string
		want bool
	}{
		{name: "status 200", url: server.URL + "/ok.jpg", want: true},
		{name: "redirect counts as healthy", url: server.URL + "/moved.jpg", want: true},
		{name: "status 410", url: server.URL + "/gone.jpg", want: false},
		{name: "status 500", url: server.URL + "/error.jpg", want: false},
		{name: "connection refused", url: deadURL + "/x.jpg", want: false},
		{name: "empty URL", url: "", want: false},
		{name: "non-http scheme", url: "ftp://example.com/x.jpg", want: false},
		{name: "relative reference", url: "img/x.jpg", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checker.IsReachable(tc.url); got != tc.want {
				t.Errorf("IsReachable(%q) = %v, want %v", tc.url, got, tc.want)
			}
		})
	}
}

func TestIsReachableIdempotent(t *testing.T) {
	server := newFixtureServer(t)
	checker := NewChecker(2*time.Second, 4)

	url := server.URL + "/gone.jpg"
	if checker.IsReachable(url) || checker.IsReachable(url) {
		t.Errorf("IsReachable(%q) flipped between calls, want stable false", url)
	}
}

func TestCheckAll(t *testing.T) {
	server := newFixtureServer(t)
	checker := NewChecker(2*time.Second, 3)

	urls := []string{
		server.URL + "/ok.jpg",
		server.URL + "/gone.jpg",
		server.URL + "/error.jpg",
		server.URL + "/moved.jpg",
	}

	broken := checker.CheckAll(urls)
	sort.Strings(broken)

	want := []string{server.URL + "/error.jpg", server.URL + "/gone.jpg"}
	if len(broken) != len(want) {
		t.Fatalf("CheckAll() = %v, want %v", broken, want)
	}
	for i := range want {
		if broken[i] != want[i] {
			t.Errorf("CheckAll() = %v, want %v", broken, want)
			break
		}
	}
}

func TestCheckAllEmpty(t *testing.T) {
	checker := NewChecker(time.Second, 2)
	if broken := checker.CheckAll(nil); broken != nil {
		t.Errorf("CheckAll(nil) = %v, want nil", broken)
	}
}

func TestCheckAllMoreURLsThanWorkers(t *testing.T) {
	server := newFixtureServer(t)
	checker := NewChecker(2*time.Second, 2)

	var urls []string
	for i := 0; i < 10; i++ {
		urls = append(urls, server.URL+"/gone.jpg")
	}

	broken := checker.CheckAll(urls)
	if len(broken) != 10 {
		t.Errorf("CheckAll() returned %d broken entries, want all 10", len(broken))
	}
}
