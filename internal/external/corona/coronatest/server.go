// Package coronatest runs an in-process fake of the Corona API for tests.
package coronatest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
)

// Token is the Authorization value the fake expects
const Token = "test-token"

// Server serves fixture data with Corona's URL layout under /api/
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	Quotes        []contract.Record
	ProductQuotes map[int64][]contract.ProductQuote
	Sites         map[int64]corona.Site
	Billing       map[int64][]corona.Details
	Registrations map[string][]corona.Details
	Companies     []corona.Company

	requests []string
	failures map[string]int
}

// NewServer starts an empty fake; fill the fixture fields before issuing requests
func NewServer() *Server {
	s := &Server{
		ProductQuotes: make(map[int64][]contract.ProductQuote),
		Sites:         make(map[int64]corona.Site),
		Billing:       make(map[int64][]corona.Details),
		Registrations: make(map[string][]corona.Details),
		failures:      make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// BaseURL is the API root to configure clients with
func (s *Server) BaseURL() string {
	return s.URL + "/api/"
}

// FailWith makes every request to path answer with status
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Requests returns the request URIs seen so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests counts requests whose path starts with /api/<prefix>
func (s *Server) CountRequests(prefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasPrefix(r, "/api/"+prefix) {
			n++
		}
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.RequestURI())
	s.mu.Unlock()

	if r.Header.Get("Authorization") != Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/")
	collection, id := splitPath(path)

	s.mu.Lock()
	status, failing := s.failures[collection]
	s.mu.Unlock()
	if failing {
		w.WriteHeader(status)
		return
	}

	q := r.URL.Query()
	switch {
	case collection == corona.PathQuotes:
		s.writeJSON(w, s.filterQuotes(q))
	case collection == corona.PathProductQuotes:
		quoteID, _ := strconv.ParseInt(q.Get("quote_id"), 10, 64)
		s.writeJSON(w, s.lockedProductQuotes(quoteID))
	case collection == corona.PathSites && id != "":
		siteID, _ := strconv.ParseInt(id, 10, 64)
		s.mu.Lock()
		site, ok := s.Sites[siteID]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.writeJSON(w, site)
	case collection == corona.PathBillingInfo:
		companyID, _ := strconv.ParseInt(q.Get("company"), 10, 64)
		s.mu.Lock()
		items := s.Billing[companyID]
		s.mu.Unlock()
		s.writeJSON(w, nonNil(items))
	case collection == corona.PathRegistrations:
		s.mu.Lock()
		items := s.Registrations[q.Get("mpan")]
		s.mu.Unlock()
		s.writeJSON(w, nonNil(items))
	case collection == corona.PathCompanies && id != "":
		companyID, _ := strconv.ParseInt(id, 10, 64)
		for _, c := range s.lockedCompanies() {
			if c.ID == companyID {
				s.writeJSON(w, c)
				return
			}
		}
		http.NotFound(w, r)
	case collection == corona.PathCompanies:
		out := []corona.Company{}
		for _, c := range s.lockedCompanies() {
			if name := q.Get("name"); name == "" || c.Name == name {
				out = append(out, c)
			}
		}
		s.writeJSON(w, out)
	default:
		http.NotFound(w, r)
	}
}

// splitPath separates "sites/42" into ("sites", "42") and "ppa/quotes/" into ("ppa/quotes", "")
func splitPath(path string) (string, string) {
	path = strings.TrimSuffix(path, "/")
	for _, known := range []string{
		corona.PathQuotes, corona.PathProductQuotes, corona.PathRegistrations,
		corona.PathSites, corona.PathBillingInfo, corona.PathCompanies,
	} {
		if path == known {
			return known, ""
		}
		if strings.HasPrefix(path, known+"/") {
			return known, strings.TrimPrefix(path, known+"/")
		}
	}
	return path, ""
}

// filterQuotes applies the ppa/quotes filters the way Corona does
func (s *Server) filterQuotes(q map[string][]string) []contract.Record {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []contract.Record{}
	for _, rec := range s.Quotes {
		if m := get(contract.KeyMPAN); m != "" && rec.MPAN != m {
			continue
		}
		if get(contract.KeyContracted) == "true" && !rec.Contracted {
			continue
		}
		if get(contract.KeyRemoveCancelled) == "true" && rec.Cancelled {
			continue
		}
		// ISO dates compare correctly as strings
		if v := get(contract.KeyStartLTE); v != "" && rec.StartDate > v {
			continue
		}
		if v := get(contract.KeyEndGTE); v != "" && rec.EndDate < v {
			continue
		}
		if v := get(contract.KeyStartGTE); v != "" && rec.StartDate < v {
			continue
		}
		if v := get(contract.KeyEndLTE); v != "" && rec.EndDate > v {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (s *Server) lockedProductQuotes(quoteID int64) []contract.ProductQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items := s.ProductQuotes[quoteID]; items != nil {
		return items
	}
	return []contract.ProductQuote{}
}

func (s *Server) lockedCompanies() []corona.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]corona.Company, len(s.Companies))
	copy(out, s.Companies)
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func nonNil(items []corona.Details) []corona.Details {
	if items == nil {
		return []corona.Details{}
	}
	return items
}
