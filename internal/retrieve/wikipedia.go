package retrieve

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/worker"
	"golang.org/x/net/html"
)

// WikipediaClient is the free-text source: it resolves a person to their
// English Wikipedia article and returns the intro extract as a biography.
type WikipediaClient struct {
	wikidataAPI  string
	wikipediaAPI string
	httpClient   *http.Client
	limiter      *worker.Limiter
	userAgent    string
}

// NewWikipediaClient creates a client over the Wikidata and Wikipedia APIs
func NewWikipediaClient(sources model.SourcesConfig, httpCfg model.HTTPConfig, limiter *worker.Limiter) *WikipediaClient {
	return &WikipediaClient{
		wikidataAPI:  sources.WikidataAPI,
		wikipediaAPI: sources.WikipediaAPI,
		httpClient:   &http.Client{Timeout: httpCfg.Timeout},
		limiter:      limiter,
		userAgent:    httpCfg.UserAgent,
	}
}

type entitiesResponse struct {
	Entities map[string]struct {
		Sitelinks map[string]struct {
			Title string `json:"title"`
		} `json:"sitelinks"`
	} `json:"entities"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Missing *bool  `json:"missing,omitempty"`
		} `json:"pages"`
	} `json:"query"`
}

// Biography returns the intro text of the person's article. With a key the
// article is resolved through the entity's enwiki sitelink, which survives
// renames and disambiguation; otherwise the name is used as the page title.
func (c *WikipediaClient) Biography(ctx context.Context, name, key string) (string, error) {
	title := name
	if key != "" {
		if resolved, err := c.sitelinkTitle(ctx, key); err == nil && resolved != "" {
			title = resolved
		}
	}
	if title == "" {
		return "", ErrBiographyNotFound
	}
	return c.extract(ctx, title)
}

func (c *WikipediaClient) sitelinkTitle(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", key)
	params.Set("props", "sitelinks")
	params.Set("format", "json")

	var resp entitiesResponse
	if err := getJSON(ctx, c.httpClient, c.limiter, c.userAgent, c.wikidataAPI, params, "", &resp); err != nil {
		return "", err
	}

	entity, ok := resp.Entities[key]
	if !ok {
		return "", nil
	}
	return entity.Sitelinks["enwiki"].Title, nil
}

func (c *WikipediaClient) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsectionformat", "plain")
	params.Set("redirects", "1")
	params.Set("format", "json")

	var resp extractResponse
	if err := getJSON(ctx, c.httpClient, c.limiter, c.userAgent, c.wikipediaAPI, params, "", &resp); err != nil {
		return "", fmt.Errorf("fetch extract: %w", err)
	}

	for _, page := range resp.Query.Pages {
		if page.Missing != nil {
			continue
		}
		if text := strings.TrimSpace(stripMarkup(page.Extract)); text != "" {
			return text, nil
		}
	}
	return "", ErrBiographyNotFound
}

// stripMarkup flattens any residual HTML in an extract to plain text.
// explaintext usually delivers clean prose, but the API is not consistent
// about stray tags and entities across mirrors.
func stripMarkup(extract string) string {
	if !strings.ContainsAny(extract, "<&") {
		return extract
	}
	doc, err := html.Parse(strings.NewReader(extract))
	if err != nil {
		return extract
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return b.String()
}
