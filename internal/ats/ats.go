// Package ats holds one adapter per supported Applicant Tracking System.
// Each provider knows how to probe a candidate token for a hosted job
// board and how to collect the board's full posting list. Adapters parse
// provider payloads into model.JobBoard; normalization happens downstream.
package ats

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
	"github.com/hirelens/hirelens/internal/fetch"
)

// Fetcher is the slice of the HTTP client providers need. *fetch.Fetcher
// satisfies it; tests substitute canned responses.
type Fetcher interface {
	Do(ctx context.Context, req fetch.Request) (*fetch.Response, error)
}

// Provider adapts one ATS vendor.
type Provider interface {
	// Type identifies the vendor.
	Type() model.ATSType
	// RateKey names the token bucket shared by every tenant of this
	// vendor, keeping request rates polite per upstream API host.
	RateKey() string
	// CareersURL is the public job board URL for a tenant token.
	CareersURL(token string) string
	// Probe checks whether token hosts a live job board. A clean miss
	// (typically a 404 for an unknown tenant) returns a zero JobBoard and
	// no error; transport, policy and parse failures return an error.
	Probe(ctx context.Context, client Fetcher, token string) (model.JobBoard, error)
	// Collect retrieves the full posting list. The returned page count
	// reports how many listing pages were fetched successfully; on error
	// the board holds whatever was collected before the failure.
	Collect(ctx context.Context, client Fetcher, token string) (model.JobBoard, int, error)
}

// Registry holds every known provider in probe tie-break order: when two
// providers report a hit for the same company, the earlier one wins.
type Registry struct {
	providers []Provider
	byType    map[model.ATSType]Provider
}

// NewRegistry builds the full provider set.
func NewRegistry() *Registry {
	providers := []Provider{
		greenhouse{},
		lever{},
		ashby{},
		workday{},
		smartRecruiters{},
		newICIMS(),
		newTaleo(),
		newSuccessFactors(),
		newWorkable(),
		newBreezy(),
		newRecruitee(),
		personio{},
		newTeamtailor(),
		newJazz(),
		newPinpoint(),
	}

	byType := make(map[model.ATSType]Provider, len(providers))
	for _, p := range providers {
		byType[p.Type()] = p
	}
	return &Registry{providers: providers, byType: byType}
}

// All returns providers in tie-break order, highest priority first.
func (r *Registry) All() []Provider {
	return r.providers
}

// Get returns the provider for t.
func (r *Registry) Get(t model.ATSType) (Provider, bool) {
	p, ok := r.byType[t]
	return p, ok
}

// Priority returns the tie-break rank of t; lower ranks win. Unknown
// types sort last.
func (r *Registry) Priority(t model.ATSType) int {
	for i, p := range r.providers {
		if p.Type() == t {
			return i
		}
	}
	return len(r.providers)
}

// fetchBoard performs one listing request. A terminal 4xx other than 429
// means the tenant does not exist on this provider and reports ok=false
// with no error; so does an unresolvable host, which is how misses look
// on providers that serve each tenant from its own subdomain. Everything
// else propagates.
func fetchBoard(ctx context.Context, client Fetcher, req fetch.Request) (body []byte, ok bool, err error) {
	resp, err := client.Do(ctx, req)
	if err != nil {
		if apperrors.IsHTTP4xx(err) && apperrors.GetStatus(err) != http.StatusTooManyRequests {
			return nil, false, nil
		}
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return resp.Body, true, nil
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeParse, "decode listing payload")
	}
	return nil
}
