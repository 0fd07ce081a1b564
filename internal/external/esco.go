package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	escoMinLimit = 1
	escoMaxLimit = 25
)

// Suggestion is one ESCO concept matched by an autocomplete query.
type Suggestion struct {
	Label string
	URI   string
}

// ESCOClient queries the ESCO classification search API for skill and
// occupation suggestions.
type ESCOClient struct {
	baseURL string
	http    *http.Client
}

// NewESCOClient builds a client over the shared HTTP client.
func NewESCOClient(baseURL string, httpClient *http.Client) *ESCOClient {
	return &ESCOClient{baseURL: baseURL, http: httpClient}
}

// Suggest searches ESCO for concepts matching query. Type is coerced to
// "skill" unless it is "occupation"; limit is clamped to [1, 25].
func (c *ESCOClient) Suggest(ctx context.Context, query, conceptType string, limit int) ([]Suggestion, error) {
	if query == "" {
		return nil, nil
	}
	if conceptType != "occupation" {
		conceptType = "skill"
	}
	if limit < escoMinLimit {
		limit = escoMinLimit
	}
	if limit > escoMaxLimit {
		limit = escoMaxLimit
	}

	params := url.Values{}
	params.Set("text", query)
	params.Set("type", conceptType)
	params.Set("limit", fmt.Sprint(limit))
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build esco request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query esco: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esco search returned %s", resp.Status)
	}

	var body struct {
		Embedded struct {
			Results []struct {
				Title string `json:"title"`
				URI   string `json:"uri"`
			} `json:"results"`
		} `json:"_embedded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode esco response: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(body.Embedded.Results))
	for _, r := range body.Embedded.Results {
		if r.Title == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{Label: r.Title, URI: r.URI})
	}
	return suggestions, nil
}
