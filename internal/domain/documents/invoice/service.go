package invoice

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

// Service provides business operations for invoices.
type Service struct {
	repo      Repository
	sequences sequence.Allocator
	settings  *settings.Service
	txManager tx.Manager
}

// NewService creates a new invoice service.
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

// Create persists a new invoice. Auto-numbered invoices get their number
// from the per-fiscal-year sequence; manually numbered ones are checked for
// collisions first. Number resolution, the counter increment and the insert
// share one transaction, so an abort leaves no gap and no orphaned number.
//
// Status is forced to DRAFT regardless of any hint in the input.
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	inv.Status = StatusDraft

	if err := inv.Validate(ctx); err != nil {
		return err
	}
	if err := inv.VerifyTotals(); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if inv.ManualEntry && inv.Number != "" {
			exists, err := s.repo.ExistsByNumber(ctx, inv.Number)
			if err != nil {
				return fmt.Errorf("check number: %w", err)
			}
			if exists {
				return apperror.NewDuplicateNumber(inv.Number)
			}
		} else {
			number, err := s.nextNumber(ctx, inv)
			if err != nil {
				return err
			}
			inv.Number = number
			inv.ManualEntry = false
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"number", inv.Number,
		"manual", inv.ManualEntry)

	return nil
}

// nextNumber resolves the configured template, computes the fiscal year from
// the issue date and allocates the next sequence value. Must run inside the
// creation transaction.
func (s *Service) nextNumber(ctx context.Context, inv *Invoice) (string, error) {
	template := s.settings.DocumentSettings(ctx).InvoiceFormat
	if template == "" {
		template = docnum.DefaultInvoiceTemplate
	}

	fiscalYear := fiscal.YearLabel(inv.Date)

	seq, err := s.sequences.Next(ctx, sequence.Invoice, fiscalYear)
	if err != nil {
		return "", fmt.Errorf("allocate sequence: %w", err)
	}

	return docnum.Render(template, docnum.Values{
		FiscalYear: fiscalYear,
		Date:       inv.Date,
		Sequence:   seq,
	}), nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// GetByNumber retrieves an invoice by its document number with lines.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// Update modifies an existing invoice. The stored document is consulted
// first: a missing id fails with NOT_FOUND, a PAID invoice rejects the whole
// update, and the document number is never part of the updatable field set.
func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	current, err := s.repo.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}

	if err := current.CanModify(); err != nil {
		return err
	}

	// Number and status are immutable on content updates; status changes
	// go through SetStatus.
	inv.Number = current.Number
	inv.ManualEntry = current.ManualEntry
	inv.Status = current.Status

	if err := inv.Validate(ctx); err != nil {
		return err
	}
	if err := inv.VerifyTotals(); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// The store advanced version and updated_at; mirror that on the
	// in-memory copy so callers see current values.
	inv.Touch()

	return nil
}

// SetStatus performs a lightweight status transition.
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

	if err := s.repo.SetStatus(ctx, docID, status); err != nil {
		return err
	}

	logger.Info(ctx, "invoice status changed",
		"id", docID,
		"from", current.Status,
		"to", status)

	return nil
}

// Delete removes a draft invoice together with its lines.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	current, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if current.Status != StatusDraft {
		return apperror.NewConflict("only draft invoices can be deleted").
			WithDetail("status", string(current.Status))
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, docID)
	})
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
