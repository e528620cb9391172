package model

import "time"

// MerchantSource indicates how a merchant entry was created.
type MerchantSource string

const (
	// SourceImport indicates the merchant came from a CSV import.
	SourceImport MerchantSource = "IMPORT"
	// SourceManual indicates the merchant was added via CLI command.
	SourceManual MerchantSource = "MANUAL"
)

// Merchant represents one catalog entry that the similarity index is
// built from. Name is the normalized form used for matching; DisplayName
// preserves the original spelling from the source.
type Merchant struct {
	CreatedAt   time.Time
	Name        string
	DisplayName string
	Source      MerchantSource
}
