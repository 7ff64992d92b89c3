package domain

import (
	"encoding/json"
	"time"
)

// ExtensionPolicy is one version of a company's browser extension
// configuration. The document is stored and returned as-is.
type ExtensionPolicy struct {
	CompanyID string
	Version   int
	Document  json.RawMessage
	UpdatedBy string
	UpdatedAt time.Time
}
