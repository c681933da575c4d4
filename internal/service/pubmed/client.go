package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/telliex/ai-swift/internal/config"
	"github.com/telliex/ai-swift/internal/model/literature"
)

const defaultMaxResults = 3

// Client queries the NCBI eutils endpoints in two round trips: an id
// search, then a batched summary fetch for the returned ids.
type Client struct {
	baseURL    string
	maxResults int
	hc         *http.Client
}

// NewClient creates a literature search client.
func NewClient(cfg config.PubMedConfig) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxResults: maxResults,
		hc:         &http.Client{},
	}
}

// Search runs the two-step esearch/esummary flow. Augmentation is strictly
// best-effort: any network or parsing failure, and a zero-id search result,
// yield nil. Errors are logged, never returned.
func (c *Client) Search(ctx context.Context, query string) []literature.Record {
	ids, err := c.searchIDs(ctx, query)
	if err != nil {
		log.Printf("[pubmed] id search failed: %v", err)
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	records, err := c.fetchSummaries(ctx, ids)
	if err != nil {
		log.Printf("[pubmed] summary fetch failed: %v", err)
		return nil
	}
	return records
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (c *Client) searchIDs(ctx context.Context, query string) ([]string, error) {
	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmode=json&retmax=%d",
		c.baseURL, url.QueryEscape(query), c.maxResults)

	var parsed esearchResponse
	if err := c.getJSON(ctx, searchURL, &parsed); err != nil {
		return nil, err
	}
	return parsed.ESearchResult.IDList, nil
}

// summaryArticle is the subset of the esummary document this service reads.
type summaryArticle struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Abstract        string `json:"abstract"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// fetchSummaries maps the summary payload into records, preserving the id
// order returned by the search step regardless of map iteration order.
func (c *Client) fetchSummaries(ctx context.Context, ids []string) ([]literature.Record, error) {
	summaryURL := fmt.Sprintf("%s/esummary.fcgi?db=pubmed&id=%s&retmode=json",
		c.baseURL, strings.Join(ids, ","))

	var parsed esummaryResponse
	if err := c.getJSON(ctx, summaryURL, &parsed); err != nil {
		return nil, err
	}

	records := make([]literature.Record, 0, len(ids))
	for _, id := range ids {
		raw, ok := parsed.Result[id]
		if !ok {
			continue
		}
		var article summaryArticle
		if err := json.Unmarshal(raw, &article); err != nil {
			return nil, fmt.Errorf("decoding summary for id %s: %w", id, err)
		}
		records = append(records, literature.Record{
			Title:    article.Title,
			Authors:  joinAuthors(article.Authors),
			Journal:  article.FullJournalName,
			PubDate:  article.PubDate,
			Abstract: article.Abstract,
			URL:      fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id),
		})
	}
	return records, nil
}

func joinAuthors(authors []struct {
	Name string `json:"name"`
}) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	names := make([]string, 0, len(authors))
	for _, author := range authors {
		names = append(names, author.Name)
	}
	return strings.Join(names, ", ")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
