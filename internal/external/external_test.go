package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const remoteOKFixture = `[
	{"legal": "API terms: attribution required."},
	{"company": "Acme", "position": "Senior Java Developer", "tags": ["java", "backend"], "location": "Remote", "url": "https://example.com/1"},
	{"company": "Globex", "position": "Frontend Engineer", "tags": ["react", "javascript"], "location": "Remote", "url": "https://example.com/2"},
	{"company": "Initech", "position": "Data Engineer", "tags": ["python", "java"], "location": "Remote", "url": "https://example.com/3"}
]`

func TestRemoteOKFetchFiltersAndDropsLegal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remoteOKFixture))
	}))
	defer srv.Close()

	c := NewRemoteOKClient(srv.URL, srv.Client())
	jobs, err := c.Fetch(context.Background(), "java", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2 (position or tag match)", len(jobs))
	}
	for _, j := range jobs {
		if j.Company == "" {
			t.Error("legal preamble leaked into results")
		}
		if j.Company == "Globex" {
			t.Error("non-matching job returned")
		}
	}
}

func TestMatchesKeywordTagEquality(t *testing.T) {
	tests := []struct {
		name    string
		job     RemoteJob
		keyword string
		want    bool
	}{
		{
			name:    "exact tag",
			job:     RemoteJob{Tags: []string{"python", "java"}},
			keyword: "java",
			want:    true,
		},
		{
			name:    "tag prefix does not match",
			job:     RemoteJob{Tags: []string{"javascript"}},
			keyword: "java",
			want:    false,
		},
		{
			name:    "tag match is case-insensitive",
			job:     RemoteJob{Tags: []string{"Java"}},
			keyword: "java",
			want:    true,
		},
		{
			name:    "position still matches by substring",
			job:     RemoteJob{Position: "Senior Java Developer"},
			keyword: "java",
			want:    true,
		},
		{
			name:    "company still matches by substring",
			job:     RemoteJob{Company: "Javatar Inc"},
			keyword: "java",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesKeyword(&tt.job, tt.keyword); got != tt.want {
				t.Errorf("matchesKeyword = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteOKFetchClampsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(remoteOKFixture))
	}))
	defer srv.Close()

	c := NewRemoteOKClient(srv.URL, srv.Client())
	jobs, err := c.Fetch(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("limit 0 should clamp to 1, got %d jobs", len(jobs))
	}
}

func TestRemoteOKFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRemoteOKClient(srv.URL, srv.Client())
	if _, err := c.Fetch(context.Background(), "", 5); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestESCOSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("text") != "data" {
			t.Errorf("text = %q", q.Get("text"))
		}
		if q.Get("type") != "skill" {
			t.Errorf("type = %q, want coerced skill", q.Get("type"))
		}
		if q.Get("limit") != "25" {
			t.Errorf("limit = %q, want clamped 25", q.Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_embedded":{"results":[
			{"title":"data analysis","uri":"http://data.europa.eu/esco/skill/1"},
			{"title":"","uri":"http://data.europa.eu/esco/skill/2"},
			{"title":"data science","uri":"http://data.europa.eu/esco/skill/3"}
		]}}`))
	}))
	defer srv.Close()

	c := NewESCOClient(srv.URL, srv.Client())
	got, err := c.Suggest(context.Background(), "data", "banana", 400)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestions = %d, want 2 (untitled dropped)", len(got))
	}
	if got[0].Label != "data analysis" || got[1].Label != "data science" {
		t.Errorf("labels = %v", got)
	}
}

func TestESCOSuggestEmptyQuery(t *testing.T) {
	c := NewESCOClient("http://unused.invalid", http.DefaultClient)
	got, err := c.Suggest(context.Background(), "", "skill", 5)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty query, got %v", got)
	}
}
