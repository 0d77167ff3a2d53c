package models

type SearchRequest struct {
	BusinessIdea string `json:"business_idea" form:"business_idea"`
	Country      string `json:"country" form:"country"`
	Industry     string `json:"industry" form:"industry"`
}

func (r SearchRequest) Query() LeadQuery {
	return LeadQuery{
		IdeaText: r.BusinessIdea,
		Country:  r.Country,
		Industry: r.Industry,
	}
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	BatchID string `json:"batch_id,omitempty"`
}

// DraftPair couples a candidate with its draft for the results page.
type DraftPair struct {
	Candidate Candidate
	Message   string
}

// Pairs zips candidates with their drafts, stopping at the shorter list.
func (r *SearchResult) Pairs() []DraftPair {
	n := len(r.Candidates)
	if len(r.Drafts) < n {
		n = len(r.Drafts)
	}
	pairs := make([]DraftPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = DraftPair{Candidate: r.Candidates[i], Message: r.Drafts[i].Body}
	}
	return pairs
}
