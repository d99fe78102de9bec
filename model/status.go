package model

type BatchStatus string

const (
	BatchStatusIdle      BatchStatus = "idle"
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusSucceeded BatchStatus = "succeeded"
	BatchStatusFailed    BatchStatus = "failed"
)

// IsTerminal reports whether the status ends a batch run.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusSucceeded || s == BatchStatusFailed
}

// AssetOutcome is the transient result of one download attempt.
type AssetOutcome struct {
	Position  int       `json:"position"` // 1-based
	MediaID   string    `json:"mediaId"`
	URL       string    `json:"url"`
	Kind      MediaKind `json:"type"`
	Filename  string    `json:"filename"`
	Succeeded bool      `json:"succeeded"`
	// Set when the URL was handed to the fallback viewer after a failure
	FallbackOpened bool   `json:"fallbackOpened,omitempty"`
	Error          string `json:"error,omitempty"`
}

type BatchOutcome struct {
	Status    BatchStatus    `json:"status"`
	Items     []AssetOutcome `json:"items"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}
