package literature

// Record is one article returned by the biomedical search step. Records are
// request-scoped: produced by the search client, consumed by the prompt
// composer, then discarded.
type Record struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Journal  string `json:"journal"`
	PubDate  string `json:"pubDate"`
	Abstract string `json:"abstract"`
	URL      string `json:"url"`
}
