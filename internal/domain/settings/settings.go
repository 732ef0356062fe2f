// Package settings exposes the key-value configuration store consumed by the
// document services: number format templates and the seller's tax profile.
package settings

import (
	"context"
	"encoding/json"

	"billmint/internal/domain/tax"
	"billmint/pkg/logger"
)

// Store keys. Values are JSON blobs.
const (
	KeyDocumentSettings = "DOCUMENT_SETTINGS"
	KeyCompanyProfile   = "COMPANY_PROFILE"
)

// Store defines read/write access to the settings key-value store.
// Get returns (nil, nil) when the key is absent - missing configuration is
// not an error anywhere in this system.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
}

// DocumentSettings holds the configured number format templates.
// Empty fields fall back to the docnum package defaults.
type DocumentSettings struct {
	InvoiceFormat   string `json:"invoice_format"`
	QuotationFormat string `json:"quotation_format"`
}

// Service provides typed access over the raw store.
type Service struct {
	store Store
}

// NewService creates a settings service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// DocumentSettings returns the configured templates, or the zero value when
// the key is absent or unreadable. Callers treat empty templates as
// "use the default".
func (s *Service) DocumentSettings(ctx context.Context) DocumentSettings {
	var ds DocumentSettings
	s.get(ctx, KeyDocumentSettings, &ds)
	return ds
}

// CompanyProfile returns the seller's tax profile. A zero profile triggers
// the classifier's IGST failsafe, so absence never blocks document creation.
func (s *Service) CompanyProfile(ctx context.Context) tax.Profile {
	var p tax.Profile
	s.get(ctx, KeyCompanyProfile, &p)
	return p
}

// SetDocumentSettings persists the number format templates.
func (s *Service) SetDocumentSettings(ctx context.Context, ds DocumentSettings) error {
	return s.set(ctx, KeyDocumentSettings, ds)
}

// SetCompanyProfile persists the seller's tax profile.
func (s *Service) SetCompanyProfile(ctx context.Context, p tax.Profile) error {
	return s.set(ctx, KeyCompanyProfile, p)
}

func (s *Service) get(ctx context.Context, key string, out any) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "settings read failed", "key", key, "error", err)
		return
	}
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn(ctx, "settings value is not valid JSON", "key", key, "error", err)
	}
}

func (s *Service) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, raw)
}
