package models

// Candidate is one search hit. Rank is its zero-based position in the API response.
type Candidate struct {
	URL     string
	Title   string
	Snippet string
	Rank    int
}

// FetchedPage holds the raw body of a candidate. OK is false when the fetch
// failed; RawHTML is empty in that case and Err says why.
type FetchedPage struct {
	URL     string
	RawHTML string
	Status  int
	OK      bool
	Err     error
}

// SimilarityResult scores one candidate against the submitted text.
type SimilarityResult struct {
	URL     string  `json:"url"`
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// Percent returns the score as a percentage rounded to two decimals.
func (r SimilarityResult) Percent() float64 {
	return float64(int64(r.Score*10000+0.5)) / 100
}

// ResultSet is the ordered list of matches for one submission.
type ResultSet []SimilarityResult

func (rs ResultSet) URLs() []string {
	urls := make([]string, len(rs))
	for i, r := range rs {
		urls[i] = r.URL
	}
	return urls
}
