package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	portsrepo "github.com/smallbooks/smallbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
	"github.com/smallbooks/smallbooks_backend/internal/utils/accounting"
	"github.com/smallbooks/smallbooks_backend/internal/utils/entrycodec"
)

var (
	ErrBadEntryDate   = errors.New("entry date must be formatted YYYY-MM-DD")
	ErrLedgerNotEmpty = errors.New("initial entry posted to a non-empty ledger")
	// ErrAccountNotFound wraps apperrors.ErrNotFound so handlers map it to 404.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
)

// ledgerService orchestrates entry posting: running-total calculation,
// field encryption, the external audit call, and atomic persistence of the
// entry with its general-journal mirror.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	cipher      ports.Cipher
	audit       ports.AuditService
	events      ports.EventPublisher

	// accountLocks serializes read-modify-write posting per account within
	// this process. The unique (account_id, sequence_no) constraint backs
	// this up across processes.
	accountLocks sync.Map // accountID -> *sync.Mutex
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	cipher ports.Cipher,
	audit ports.AuditService,
	events ports.EventPublisher,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		cipher:      cipher,
		audit:       audit,
		events:      events,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) lockAccount(accountID string) func() {
	muIface, _ := s.accountLocks.LoadOrStore(accountID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// resolveActor fetches the acting user and rejects removed users.
func (s *ledgerService) resolveActor(ctx context.Context, actorPublicKey string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByPublicKey(ctx, actorPublicKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if actor.Role == domain.RoleDeleted {
		return nil, fmt.Errorf("%w: user has been removed", apperrors.ErrForbidden)
	}
	return actor, nil
}

// PostEntry appends one entry to an account's ledger.
// Implements portssvc.LedgerSvcFacade.
func (s *ledgerService) PostEntry(ctx context.Context, accountID string, req dto.PostEntryRequest, actorPublicKey string) (*domain.AccountEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Validation, before any side effect ---
	entryDate, err := time.Parse(dto.EntryDateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBadEntryDate)
	}
	if err := accounting.ValidateEntryAmounts(req.Debit, req.Credit); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	actor, err := s.resolveActor(ctx, actorPublicKey)
	if err != nil {
		return nil, err
	}
	if !account.RoleMayEdit(actor.Role) {
		logger.Warn("User lacks edit permission on account", slog.String("account_id", accountID), slog.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%w: role %s may not post to account %s", apperrors.ErrForbidden, actor.Role, account.Name)
	}

	// Serialize the read-modify-write per account.
	unlock := s.lockAccount(accountID)
	defer unlock()

	// --- Prior balance ---
	priorTotal := decimal.Zero
	sequenceNo := int64(1)
	if !req.Initial {
		lastEntry, err := s.ledgerRepo.FindLastEntry(ctx, accountID)
		switch {
		case err == nil:
			lastFields := entrycodec.Decode(ctx, s.cipher, lastEntry.EncryptedBag)
			priorTotal = lastFields.RunningTotal
			sequenceNo = lastEntry.SequenceNo + 1
		case errors.Is(err, apperrors.ErrNotFound):
			// Empty ledger: prior balance is implicitly zero.
		default:
			return nil, fmt.Errorf("failed to fetch last entry for account %s: %w", accountID, err)
		}
	}

	newTotal, err := accounting.ComputeRunningTotal(priorTotal, account.Basket, req.Debit, req.Credit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute running total: %w", err)
	}

	// --- Encode ---
	fields := domain.EntryFields{
		Description:    req.Description,
		Debit:          req.Debit,
		Credit:         req.Credit,
		RunningTotal:   newTotal,
		OwnerPublicKey: actorPublicKey,
	}
	bag, err := entrycodec.Encode(ctx, s.cipher, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry: %w", err)
	}

	// --- External audit record ---
	// This is the only step outside the storage transaction: a failure
	// after this point leaves an orphaned audit record, nothing else.
	auditPayload, _ := json.Marshal(map[string]string{
		"account": account.Name,
		"date":    req.Date,
	})
	auditRef, err := s.audit.CreateAction(ctx, "ledger entry: "+account.Name, auditPayload)
	if err != nil {
		logger.Error("Audit service call failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create audit record: %w", err)
	}

	// --- Atomic persistence of entry + mirror ---
	now := time.Now().UTC()
	entry := domain.AccountEntry{
		EntryID:      uuid.NewString(),
		AccountID:    accountID,
		SequenceNo:   sequenceNo,
		EntryDate:    entryDate,
		Fields:       fields,
		EncryptedBag: bag,
		AuditRef:     auditRef,
		CreatedAt:    now,
		CreatedBy:    actorPublicKey,
	}
	mirror := domain.GeneralJournalEntry{
		JournalEntryID: uuid.NewString(),
		EntryID:        entry.EntryID,
		AccountID:      accountID,
		AccountName:    account.Name,
		EntryDate:      entryDate,
		Fields:         fields,
		EncryptedBag:   bag,
		AuditRef:       auditRef,
		CreatedAt:      now,
		CreatedBy:      actorPublicKey,
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry, mirror); err != nil {
		if req.Initial && errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrLedgerNotEmpty)
		}
		logger.Error("Failed to save entry", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	// Best effort notification; never fails the post.
	if err := s.events.EntryPosted(ctx, accountID, account.Name, entry.EntryID); err != nil {
		logger.Warn("Failed to publish entry-posted event", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
	}

	logger.Info("Entry posted",
		slog.String("account_id", accountID),
		slog.String("entry_id", entry.EntryID),
		slog.Int64("sequence_no", sequenceNo),
	)
	return &entry, nil
}

// GetLastEntry returns the newest entry's encrypted bag and the account's
// basket. Implements portssvc.LedgerSvcFacade.
func (s *ledgerService) GetLastEntry(ctx context.Context, accountID string, actorPublicKey string) (*dto.LastEntryResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	actor, err := s.resolveActor(ctx, actorPublicKey)
	if err != nil {
		return nil, err
	}
	if !account.RoleMayView(actor.Role) {
		return nil, fmt.Errorf("%w: role %s may not view account %s", apperrors.ErrForbidden, actor.Role, account.Name)
	}

	lastEntry, err := s.ledgerRepo.FindLastEntry(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last entry for account %s: %w", accountID, err)
	}

	fields := entrycodec.Decode(ctx, s.cipher, lastEntry.EncryptedBag)
	return &dto.LastEntryResponse{
		AccountID:    accountID,
		SequenceNo:   lastEntry.SequenceNo,
		EncryptedBag: lastEntry.EncryptedBag,
		Basket:       account.Basket,
		RunningTotal: fields.RunningTotal,
	}, nil
}

// ListEntries returns a decoded page of an account's ledger.
// Implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ListEntries(ctx context.Context, accountID string, params dto.ListEntriesParams, actorPublicKey string) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	actor, err := s.resolveActor(ctx, actorPublicKey)
	if err != nil {
		return nil, err
	}
	if !account.RoleMayView(actor.Role) {
		return nil, fmt.Errorf("%w: role %s may not view account %s", apperrors.ErrForbidden, actor.Role, account.Name)
	}

	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		// Decoding is defensive: a corrupt field yields its documented
		// fallback instead of failing the page.
		entries[i].Fields = entrycodec.Decode(ctx, s.cipher, entries[i].EncryptedBag)
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	logger.Debug("Entries listed", slog.String("account_id", accountID), slog.Int("count", len(responses)))
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ListGeneralJournal returns a decoded page of the cross-account journal.
// Implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ListGeneralJournal(ctx context.Context, params dto.ListGeneralJournalParams, actorPublicKey string) (*dto.ListGeneralJournalResponse, error) {
	if _, err := s.resolveActor(ctx, actorPublicKey); err != nil {
		return nil, err
	}

	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListGeneralJournal(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list general journal: %w", err)
	}

	responses := make([]dto.GeneralJournalEntryResponse, len(entries))
	for i := range entries {
		entries[i].Fields = entrycodec.Decode(ctx, s.cipher, entries[i].EncryptedBag)
		responses[i] = dto.ToGeneralJournalEntryResponse(&entries[i])
	}
	return &dto.ListGeneralJournalResponse{Entries: responses, NextToken: nextToken}, nil
}
