package entities

// LastWord is the most recent stable selection reported by any page
// surface, persisted so the side panel can pick it up on open.
type LastWord struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
