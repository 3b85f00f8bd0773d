package retrieve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ligacoach/ligacoach/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "ligacoach-test/0"}
}

func sparqlServer(t *testing.T, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.Query().Get("query")
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("format = %q, want json", r.URL.Query().Get("format"))
		}
		if ua := r.Header.Get("User-Agent"); ua != "ligacoach-test/0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		w.Write([]byte(body))
	}))
}

func TestCurrentManager(t *testing.T) {
	body := `{"results":{"bindings":[{
		"manager":{"type":"uri","value":"http://www.wikidata.org/entity/Q57522"},
		"managerLabel":{"type":"literal","value":"Lukas Kwasniok"}
	}]}}`
	var query string
	srv := sparqlServer(t, body, &query)
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	lookup, err := client.CurrentManager(context.Background(), model.ClubIdentity{Key: "Q104770"})
	if err != nil {
		t.Fatalf("CurrentManager failed: %v", err)
	}

	want := ManagerLookup{Member: true, Manager: "Lukas Kwasniok", ManagerKey: "Q57522"}
	if lookup != want {
		t.Errorf("lookup = %+v, want %+v", lookup, want)
	}
	if !strings.Contains(query, "wd:Q104770") || !strings.Contains(query, "wdt:P118") {
		t.Errorf("query does not mention the club and league properties:\n%s", query)
	}
}

func TestCurrentManagerNotMember(t *testing.T) {
	srv := sparqlServer(t, `{"results":{"bindings":[]}}`, nil)
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	lookup, err := client.CurrentManager(context.Background(), model.ClubIdentity{Key: "Q152431"})
	if err != nil {
		t.Fatalf("CurrentManager failed: %v", err)
	}
	if lookup.Member {
		t.Error("zero result rows must mean not a member")
	}
}

func TestCurrentManagerVacant(t *testing.T) {
	// A membership row without a manager binding: the post is vacant.
	srv := sparqlServer(t, `{"results":{"bindings":[{}]}}`, nil)
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	lookup, err := client.CurrentManager(context.Background(), model.ClubIdentity{Key: "Q185129"})
	if err != nil {
		t.Fatalf("CurrentManager failed: %v", err)
	}
	if !lookup.Member {
		t.Error("Member = false, want true")
	}
	if lookup.Manager != "" {
		t.Errorf("Manager = %q, want empty for a vacant post", lookup.Manager)
	}
}

func TestCurrentManagerUnlabeledTreatedAsVacant(t *testing.T) {
	// The label service echoes the QID when no human-readable label exists;
	// answering with an entity ID would be worse than admitting a vacancy.
	body := `{"results":{"bindings":[{
		"manager":{"type":"uri","value":"http://www.wikidata.org/entity/Q999"},
		"managerLabel":{"type":"literal","value":"Q999"}
	}]}}`
	srv := sparqlServer(t, body, nil)
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	lookup, err := client.CurrentManager(context.Background(), model.ClubIdentity{Key: "Q185129"})
	if err != nil {
		t.Fatalf("CurrentManager failed: %v", err)
	}
	if !lookup.Member || lookup.Manager != "" {
		t.Errorf("lookup = %+v, want member with empty manager", lookup)
	}
}

func TestCurrentManagerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	if _, err := client.CurrentManager(context.Background(), model.ClubIdentity{Key: "Q104770"}); err == nil {
		t.Error("expected transport error on 503")
	}
}

func TestCurrentClubs(t *testing.T) {
	body := `{"results":{"bindings":[
		{"club":{"type":"uri","value":"http://www.wikidata.org/entity/Q15789"},
		 "clubLabel":{"type":"literal","value":"FC Bayern München"},
		 "cityLabel":{"type":"literal","value":"München"},
		 "alt":{"type":"literal","value":"FCB"}},
		{"club":{"type":"uri","value":"http://www.wikidata.org/entity/Q15789"},
		 "clubLabel":{"type":"literal","value":"FC Bayern München"},
		 "cityLabel":{"type":"literal","value":"München"},
		 "alt":{"type":"literal","value":"Bayern"}},
		{"club":{"type":"uri","value":"http://www.wikidata.org/entity/Q15789"},
		 "clubLabel":{"type":"literal","value":"FC Bayern München"},
		 "cityLabel":{"type":"literal","value":"München"},
		 "alt":{"type":"literal","value":"FCB"}},
		{"club":{"type":"uri","value":"http://www.wikidata.org/entity/Q41420"},
		 "clubLabel":{"type":"literal","value":"Borussia Dortmund"},
		 "cityLabel":{"type":"literal","value":"Dortmund"}}
	]}}`
	srv := sparqlServer(t, body, nil)
	defer srv.Close()

	client := NewWikidataClient(srv.URL, testHTTPConfig(), nil)
	clubs, err := client.CurrentClubs(context.Background())
	if err != nil {
		t.Fatalf("CurrentClubs failed: %v", err)
	}

	if len(clubs) != 2 {
		t.Fatalf("got %d clubs, want 2", len(clubs))
	}
	// Sorted by name: Dortmund before Bayern ("B" < "F").
	if clubs[0].Key != "Q41420" || clubs[1].Key != "Q15789" {
		t.Errorf("club order = %s, %s; want Q41420, Q15789", clubs[0].Key, clubs[1].Key)
	}
	bayern := clubs[1]
	if bayern.City != "München" {
		t.Errorf("city = %q, want München", bayern.City)
	}
	// Aliases deduplicated and sorted; "FCB" appeared twice in the rows.
	if len(bayern.Aliases) != 2 || bayern.Aliases[0] != "Bayern" || bayern.Aliases[1] != "FCB" {
		t.Errorf("aliases = %v, want [Bayern FCB]", bayern.Aliases)
	}
}

func TestEntityID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"http://www.wikidata.org/entity/Q57522", "Q57522"},
		{"http://www.wikidata.org/entity/Q57522/", "Q57522"},
		{"Q57522", "Q57522"},
	}
	for _, tc := range cases {
		if got := entityID(tc.in); got != tc.want {
			t.Errorf("entityID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
