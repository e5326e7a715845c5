package model

// Task represents one card in the board's flat task collection.
type Task struct {
	ID          string // Opaque board page ID
	Name        string // Card title
	Status      string // Free-text status label, compared against configured values
	Type        string // Free-text type label (e.g. "Epic"), may be blank
	ParentID    string // ID of the parent card, empty for top-level tasks
	CreatedTime string // RFC3339 creation time string from the board API
}
