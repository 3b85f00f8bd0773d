package retrieve

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/worker"
)

// Wikidata item and property identifiers used by the queries
const (
	itemFootballClub = "Q476028" // instance of: association football club
	itemBundesliga   = "Q82595"  // league: Bundesliga
	propInstanceOf   = "P31"
	propLeague       = "P118"
	propHeadquarters = "P159"
	propHeadCoach    = "P286"
)

// WikidataClient is the structured knowledge source: a read-only SPARQL
// client over the Wikidata query service.
type WikidataClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *worker.Limiter
	userAgent  string
}

// NewWikidataClient creates a client for the given SPARQL endpoint
func NewWikidataClient(endpoint string, httpCfg model.HTTPConfig, limiter *worker.Limiter) *WikidataClient {
	return &WikidataClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		limiter:    limiter,
		userAgent:  httpCfg.UserAgent,
	}
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

// CurrentManager reports whether the club is currently a Bundesliga member
// and, if so, who manages it. Zero result rows mean the club is not recorded
// as a member; a row without a manager binding means the post is vacant.
func (c *WikidataClient) CurrentManager(ctx context.Context, club model.ClubIdentity) (ManagerLookup, error) {
	query := fmt.Sprintf(`SELECT ?manager ?managerLabel WHERE {
  wd:%[1]s wdt:%[2]s wd:%[3]s .
  OPTIONAL { wd:%[1]s wdt:%[4]s ?manager . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
LIMIT 1`, club.Key, propLeague, itemBundesliga, propHeadCoach)

	var resp sparqlResponse
	if err := c.query(ctx, query, &resp); err != nil {
		return ManagerLookup{}, err
	}

	bindings := resp.Results.Bindings
	if len(bindings) == 0 {
		return ManagerLookup{Member: false}, nil
	}

	lookup := ManagerLookup{Member: true}
	binding := bindings[0]
	if label, ok := binding["managerLabel"]; ok && label.Value != "" {
		lookup.Manager = label.Value
	}
	if uri, ok := binding["manager"]; ok {
		lookup.ManagerKey = entityID(uri.Value)
	}
	// A label that is just the QID means the source has the statement but no
	// human-readable name; treat it as vacant rather than answer with an ID.
	if lookup.Manager == lookup.ManagerKey {
		lookup.Manager = ""
	}
	return lookup, nil
}

// CurrentClubs retrieves every current Bundesliga club with its city and
// English aliases. Used by the gazetteer sync command, not the query path.
func (c *WikidataClient) CurrentClubs(ctx context.Context) ([]model.ClubIdentity, error) {
	query := fmt.Sprintf(`SELECT ?club ?clubLabel ?cityLabel ?alt WHERE {
  ?club wdt:%s wd:%s ;
        wdt:%s wd:%s ;
        wdt:%s ?city .
  OPTIONAL { ?club skos:altLabel ?alt . FILTER(LANG(?alt) = "en") }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}`, propInstanceOf, itemFootballClub, propLeague, itemBundesliga, propHeadquarters)

	var resp sparqlResponse
	if err := c.query(ctx, query, &resp); err != nil {
		return nil, err
	}

	byKey := make(map[string]*model.ClubIdentity)
	aliasSeen := make(map[string]map[string]struct{})
	for _, binding := range resp.Results.Bindings {
		uri, ok := binding["club"]
		if !ok {
			continue
		}
		key := entityID(uri.Value)
		club, exists := byKey[key]
		if !exists {
			club = &model.ClubIdentity{Key: key}
			byKey[key] = club
			aliasSeen[key] = make(map[string]struct{})
		}
		if label, ok := binding["clubLabel"]; ok {
			club.Name = label.Value
		}
		if city, ok := binding["cityLabel"]; ok {
			club.City = city.Value
		}
		if alt, ok := binding["alt"]; ok && alt.Value != "" && alt.Value != club.Name {
			if _, dup := aliasSeen[key][alt.Value]; !dup {
				aliasSeen[key][alt.Value] = struct{}{}
				club.Aliases = append(club.Aliases, alt.Value)
			}
		}
	}

	clubs := make([]model.ClubIdentity, 0, len(byKey))
	for _, club := range byKey {
		sort.Strings(club.Aliases)
		clubs = append(clubs, *club)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].Name < clubs[j].Name })
	return clubs, nil
}

func (c *WikidataClient) query(ctx context.Context, query string, out any) error {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	return getJSON(ctx, c.httpClient, c.limiter, c.userAgent, c.endpoint, params, "application/sparql-results+json", out)
}

// entityID extracts the trailing QID from an entity URI
func entityID(uri string) string {
	trimmed := strings.TrimSuffix(uri, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
