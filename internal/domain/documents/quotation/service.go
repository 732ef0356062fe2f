package quotation

import (
	"context"
	"fmt"

	"billmint/internal/core/apperror"
	"billmint/internal/core/docnum"
	"billmint/internal/core/fiscal"
	"billmint/internal/core/id"
	"billmint/internal/core/sequence"
	"billmint/internal/core/tx"
	"billmint/internal/domain"
	"billmint/internal/domain/settings"
	"billmint/pkg/logger"
)

// Service provides business operations for quotations.
type Service struct {
	repo      Repository
	sequences sequence.Allocator
	settings  *settings.Service
	txManager tx.Manager
}

// NewService creates a new quotation service.
func NewService(
	repo Repository,
	sequences sequence.Allocator,
	settingsService *settings.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		sequences: sequences,
		settings:  settingsService,
		txManager: txManager,
	}
}

// Create persists a new quotation. Numbering follows the same transactional
// contract as invoices but draws from the quotation counter, so invoice and
// quotation sequences never interleave.
func (s *Service) Create(ctx context.Context, q *Quotation) error {
	q.Status = StatusDraft

	if err := q.Validate(ctx); err != nil {
		return err
	}
	if err := q.VerifyTotals(); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if q.ManualEntry && q.Number != "" {
			exists, err := s.repo.ExistsByNumber(ctx, q.Number)
			if err != nil {
				return fmt.Errorf("check number: %w", err)
			}
			if exists {
				return apperror.NewDuplicateNumber(q.Number)
			}
		} else {
			number, err := s.nextNumber(ctx, q)
			if err != nil {
				return err
			}
			q.Number = number
			q.ManualEntry = false
		}

		if err := s.repo.Create(ctx, q); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, q.ID, q.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	logger.Info(ctx, "quotation created",
		"id", q.ID,
		"number", q.Number,
		"manual", q.ManualEntry)

	return nil
}

func (s *Service) nextNumber(ctx context.Context, q *Quotation) (string, error) {
	template := s.settings.DocumentSettings(ctx).QuotationFormat
	if template == "" {
		template = docnum.DefaultQuotationTemplate
	}

	fiscalYear := fiscal.YearLabel(q.Date)

	seq, err := s.sequences.Next(ctx, sequence.Quotation, fiscalYear)
	if err != nil {
		return "", fmt.Errorf("allocate sequence: %w", err)
	}

	return docnum.Render(template, docnum.Values{
		FiscalYear: fiscalYear,
		Date:       q.Date,
		Sequence:   seq,
	}), nil
}

// GetByID retrieves a quotation with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quotation, error) {
	q, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	q.Lines = lines

	return q, nil
}

// GetByNumber retrieves a quotation by its document number with lines.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Quotation, error) {
	q, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	q.Lines = lines

	return q, nil
}

// Update modifies an existing quotation. Number and status stay as stored;
// status changes go through SetStatus.
func (s *Service) Update(ctx context.Context, q *Quotation) error {
	current, err := s.repo.GetByID(ctx, q.ID)
	if err != nil {
		return err
	}

	q.Number = current.Number
	q.ManualEntry = current.ManualEntry
	q.Status = current.Status

	if err := q.Validate(ctx); err != nil {
		return err
	}
	if err := q.VerifyTotals(); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, q); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, q.ID, q.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// The store advanced version and updated_at; mirror that on the
	// in-memory copy so callers see current values.
	q.Touch()

	return nil
}

// SetStatus performs a status transition.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status Status) error {
	if !status.Valid() {
		return apperror.NewValidation("unknown status").
			WithDetail("value", string(status))
	}

	current, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if !CanTransition(current.Status, status) {
		return apperror.NewConflict(fmt.Sprintf("cannot transition from %s to %s", current.Status, status)).
			WithDetail("from", string(current.Status)).
			WithDetail("to", string(status))
	}

	return s.repo.SetStatus(ctx, docID, status)
}

// Delete removes a quotation together with its lines. Quotations carry no
// fiscal obligations, so deletion is allowed in any status.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	if _, err := s.repo.GetByID(ctx, docID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, docID)
	})
}

// List retrieves quotations with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error) {
	return s.repo.List(ctx, filter)
}
