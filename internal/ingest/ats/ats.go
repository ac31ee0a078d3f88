// Package ats holds one adapter per applicant-tracking provider. Every
// adapter turns its provider's wire format into []domain.CanonicalJob;
// everything downstream of this package is provider-agnostic.
package ats

import (
	"net/http"
	"time"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/util"

	"context"
)

// Batch is the raw provider payload handed from Fetch to Transform. Each
// adapter owns its concrete type and asserts it back in Transform.
type Batch any

// Connector is the per-employer adapter contract. Fetch errors abort only
// that employer; Transform never fails outright — per-record problems are
// recorded on the collector and the record dropped.
type Connector interface {
	Kind() domain.ProviderKind
	Fetch(ctx context.Context, emp domain.Employer) (Batch, error)
	Transform(batch Batch, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob
}

// CrossEmployerConnector is the contract for feeds that return jobs for
// every employer of the kind in one call (TeamTailor). Rows are resolved to
// employers by company name; rows for unknown companies are skipped.
type CrossEmployerConnector interface {
	Kind() domain.ProviderKind
	FetchAll(ctx context.Context) (Batch, error)
	TransformAll(batch Batch, employers []domain.Employer, rep *domain.Collector) []domain.CanonicalJob
}

// CredentialSource resolves per-employer API credentials kept outside the
// employer record (OS keychain).
type CredentialSource interface {
	WorkdayCredentials(emp domain.Employer) (user, pass string, err error)
}

// Registry maps provider kinds to their adapters.
type Registry struct {
	perEmployer map[domain.ProviderKind]Connector
	cross       []CrossEmployerConnector
}

func NewRegistry(hc *http.Client, limiter *util.HostLimiter, creds CredentialSource) *Registry {
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	c := client{hc: hc, limiter: limiter}

	r := &Registry{perEmployer: make(map[domain.ProviderKind]Connector)}
	for _, conn := range []Connector{
		&Lever{c: c},
		&Greenhouse{c: c},
		&Workable{c: c},
		&Ashby{c: c},
		&Recruitee{c: c},
		&SyncHR{c: c},
		&ClearCompany{c: c},
		&BreezyHR{c: c},
		&JazzHR{c: c},
		&Personio{c: c},
		&Jobvite{c: c},
		&Polymer{c: c},
		&JobScore{c: c},
		&Workday{c: c, creds: creds},
		&Rippling{c: c},
		&BambooHR{c: c},
		&ICIMS{c: c},
	} {
		r.perEmployer[conn.Kind()] = conn
	}
	r.cross = []CrossEmployerConnector{&TeamTailor{c: c}}
	return r
}

// Lookup returns the per-employer adapter for kind, if one exists.
func (r *Registry) Lookup(kind domain.ProviderKind) (Connector, bool) {
	conn, ok := r.perEmployer[kind]
	return conn, ok
}

// Cross returns the adapters that fetch once for all their employers.
func (r *Registry) Cross() []CrossEmployerConnector {
	return r.cross
}

// CrossKind reports whether kind is handled by a cross-employer adapter.
func (r *Registry) CrossKind(kind domain.ProviderKind) bool {
	for _, c := range r.cross {
		if c.Kind() == kind {
			return true
		}
	}
	return false
}

// applyURL appends the employer's tracking-parameter suffix to an apply link.
func applyURL(base string, emp domain.Employer) string {
	return base + emp.ApplyURLTrackingParams
}

// trackingSource is the fallback source tag for providers that require one
// in the apply URL even when the employer configured none.
func trackingSource(emp domain.Employer) string {
	if emp.ApplyURLTrackingParams != "" {
		return emp.ApplyURLTrackingParams
	}
	return "boardfeed"
}

// resolveDescription sanitizes the provider body and falls back to the
// employer's company description when the posting has none.
func resolveDescription(raw string, emp domain.Employer) string {
	desc := util.SanitizeDescription(raw)
	if util.CleanText(desc) == "" {
		return emp.CompanyDescription
	}
	return desc
}

// wrongBatch records the one structural failure Transform can hit: being
// handed a Batch produced by a different adapter.
func wrongBatch(kind domain.ProviderKind, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	rep.Add(domain.BrokenImport{
		Email:  emp.Email,
		Error:  "unexpected batch payload",
		ATS:    string(kind),
		Source: "transform_jobs",
	})
	return nil
}
