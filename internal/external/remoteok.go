// Package external holds small typed clients for the public job and
// skill data sources the CLI can pull from.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	remoteOKMinLimit = 1
	remoteOKMaxLimit = 50
)

// RemoteJob is one listing from the RemoteOK public feed. The feed is
// loosely typed, so only the fields the CLI consumes are mapped.
type RemoteJob struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
}

// RemoteOKClient fetches the RemoteOK public JSON feed.
type RemoteOKClient struct {
	baseURL string
	http    *http.Client
}

// NewRemoteOKClient builds a client over the shared HTTP client.
func NewRemoteOKClient(baseURL string, httpClient *http.Client) *RemoteOKClient {
	return &RemoteOKClient{baseURL: baseURL, http: httpClient}
}

// Fetch returns up to limit listings matching keyword. The feed's first
// element is a legal notice, not a job, and is dropped. A blank keyword
// matches everything. Limit is clamped to [1, 50].
func (c *RemoteOKClient) Fetch(ctx context.Context, keyword string, limit int) ([]RemoteJob, error) {
	if limit < remoteOKMinLimit {
		limit = remoteOKMinLimit
	}
	if limit > remoteOKMaxLimit {
		limit = remoteOKMaxLimit
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build remoteok request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch remoteok feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok feed returned %s", resp.Status)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode remoteok feed: %w", err)
	}
	if len(raw) > 0 {
		raw = raw[1:]
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var jobs []RemoteJob
	for _, item := range raw {
		var job RemoteJob
		if err := json.Unmarshal(item, &job); err != nil {
			continue
		}
		if keyword != "" && !matchesKeyword(&job, keyword) {
			continue
		}
		jobs = append(jobs, job)
		if len(jobs) == limit {
			break
		}
	}
	return jobs, nil
}

// matchesKeyword matches position and company by substring but tags by
// whole-tag equality, so "java" does not pick up "javascript" listings.
func matchesKeyword(job *RemoteJob, keyword string) bool {
	if strings.Contains(strings.ToLower(job.Position), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Company), keyword) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.EqualFold(strings.TrimSpace(tag), keyword) {
			return true
		}
	}
	return false
}
