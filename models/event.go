package models

// Event is the normalized view of one record from the event archive. The
// timestamp is the record's SystemTime attribute kept verbatim, nothing in the
// pipeline reinterprets it. Account and IPAddress come from the event data
// section and fall back to defaults when the record does not carry them.
type Event struct {
	EventID   int    `json:"event_id"`
	Timestamp string `json:"timestamp"`
	Account   string `json:"account"`
	Message   string `json:"message"`
	IPAddress string `json:"ip_address"`
}
