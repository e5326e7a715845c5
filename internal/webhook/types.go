package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute
}

// Sentinel values used when a payload field cannot be resolved.
const (
	UnknownEventType = "unknown"
	NotAvailable     = "n/a"
)

// Summary is the canonical view of one board webhook event, normalized from
// the several payload shapes the board backend delivers.
type Summary struct {
	EventType string // e.g. "page.properties_updated", or "unknown"
	TaskID    string // Board page id, or "n/a"
	Status    string // Resolved status label, or "n/a"
}

// Delivery is one raw webhook delivery handed over by the HTTP receiver.
type Delivery struct {
	Body      []byte // Raw request body, exactly as signed
	Signature string // Signature header value ("sha256=<hex>")
	SourceIP  string // Remote address for allowlist checks and rate limiting
}

// ProcessResult reports what a delivery caused.
type ProcessResult struct {
	Summary          Summary
	Relevant         bool // Whether the event carried anything actionable
	CacheInvalidated bool
	EpicClosed       bool
	Message          string
}
