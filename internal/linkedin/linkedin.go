// Package linkedin talks to LinkedIn's private Voyager API on behalf of a
// single member account. Callers only see the API interface.
package linkedin

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// API is the set of LinkedIn operations the outreach flow relies on.
type API interface {
	SearchPeople(ctx context.Context, params SearchParams) ([]Person, error)
	SendMessage(ctx context.Context, recipientIDs []string, body string) error
	AddConnection(ctx context.Context, profileID string, message string) error
}

// SearchParams filters a people search. Empty slices mean "no filter".
// Regions and Industries accept either bare IDs or full URNs.
type SearchParams struct {
	Keywords      string
	Regions       []string
	Industries    []string
	NetworkDepths []string
	Limit         int
}

// Person is one people-search hit. Fields are empty when LinkedIn omits them.
type Person struct {
	URNID    string
	Name     string
	JobTitle string
	Location string
	Distance string
}

var (
	// ErrClientUnavailable means the shared client could not be initialised.
	ErrClientUnavailable = errors.New("linkedin client is not initialized")
	// ErrMissingCredentials means no username or password was configured.
	ErrMissingCredentials = errors.New("linkedin credentials are not configured")
)

// StatusError is returned when LinkedIn answers with an unexpected status code.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("linkedin %s: unexpected status %d", e.Op, e.StatusCode)
}

// AuthError is returned when the login flow does not end in PASS.
type AuthError struct {
	Result string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("linkedin authentication failed: %s", e.Result)
}

// urnID returns the trailing ID of a URN, or the input when it has no colon.
func urnID(urn string) string {
	urn = strings.TrimSpace(urn)
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

// profileIDFromEntityURN extracts the member ID from an entity result URN such as
// urn:li:fsd_entityResultViewModel:(urn:li:fsd_profile:ACoAAB,SEARCH_SRP,DEFAULT).
func profileIDFromEntityURN(entityURN string) string {
	inner := entityURN
	if i := strings.Index(inner, "("); i >= 0 {
		inner = inner[i+1:]
	}
	if i := strings.IndexAny(inner, ",)"); i >= 0 {
		inner = inner[:i]
	}
	if inner == "" {
		return ""
	}
	return urnID(inner)
}
