package models

// NotAvailable is the placeholder for candidate fields missing from a search result.
const NotAvailable = "N/A"

// LeadQuery is what the user submits on the landing page.
type LeadQuery struct {
	IdeaText string `json:"business_idea"`
	Country  string `json:"country"`
	Industry string `json:"industry"`
}

// Candidate is a person profile returned by the people search.
type Candidate struct {
	ID              string `json:"urn_id"`
	Name            string `json:"name"`
	JobTitle        string `json:"jobtitle"`
	Location        string `json:"location"`
	NetworkDistance string `json:"distance"`
}

// DraftMessage is a generated outreach body for one candidate.
type DraftMessage struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Body          string `json:"body"`
}

// OutreachRequest is one dispatch unit. Body is nil for connection requests.
type OutreachRequest struct {
	CandidateID string  `json:"candidate_id"`
	MessageBody *string `json:"message_body,omitempty"`
}

// SearchResult is the request-scoped output of the search-and-draft pipeline.
type SearchResult struct {
	RunID      string         `json:"run_id,omitempty"`
	Query      LeadQuery      `json:"query"`
	Candidates []Candidate    `json:"candidates"`
	Drafts     []DraftMessage `json:"drafts"`
}

// Complete reports whether the result carries everything the results page needs.
func (r *SearchResult) Complete() bool {
	return r != nil && r.Query.IdeaText != "" && len(r.Candidates) > 0 && len(r.Drafts) > 0
}
