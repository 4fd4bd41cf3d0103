package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"productiv/internal/amqp"
	"productiv/internal/core"
	"productiv/internal/storage"
)

// DiscoverService simulates the bank-sync integration. Connect and Sync
// only track connection state; real transaction data enters through
// Import until API credentials exist.
type DiscoverService struct {
	repo         *storage.SQLiteRepository
	transactions *TransactionService
	now          func() time.Time
}

func NewDiscoverService(repo *storage.SQLiteRepository, transactions *TransactionService) *DiscoverService {
	return &DiscoverService{repo: repo, transactions: transactions, now: time.Now}
}

type DiscoverStatus struct {
	Connected bool       `json:"connected"`
	LastSync  *time.Time `json:"lastSync"`
}

func (s *DiscoverService) Status(ctx context.Context, userID string) (DiscoverStatus, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return DiscoverStatus{}, err
	}
	return DiscoverStatus{Connected: u.DiscoverConnected, LastSync: u.DiscoverLastSync}, nil
}

func (s *DiscoverService) Connect(ctx context.Context, userID string) (DiscoverStatus, error) {
	now := s.now()
	if err := s.repo.SetDiscoverConnection(ctx, userID, true, &now); err != nil {
		return DiscoverStatus{}, err
	}
	return DiscoverStatus{Connected: true, LastSync: &now}, nil
}

func (s *DiscoverService) Disconnect(ctx context.Context, userID string) error {
	return s.repo.SetDiscoverConnection(ctx, userID, false, nil)
}

type SyncResult struct {
	LastSync             time.Time `json:"lastSync"`
	TransactionsImported int       `json:"transactionsImported"`
}

// Sync requires a connected account and advances the last-sync marker.
// No transactions move yet; the count stays 0 until the integration is
// backed by a real API.
func (s *DiscoverService) Sync(ctx context.Context, userID string) (SyncResult, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return SyncResult{}, err
	}
	if !u.DiscoverConnected {
		return SyncResult{}, core.ErrNotConnected
	}

	now := s.now()
	if err := s.repo.SetDiscoverConnection(ctx, userID, true, &now); err != nil {
		return SyncResult{}, err
	}
	return SyncResult{LastSync: now, TransactionsImported: 0}, nil
}

// ImportedTransaction is one row of a manual bank export. Negative
// amounts are expenses.
type ImportedTransaction struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Category    string
}

// Import stores bank-export rows as transactions, taking the absolute
// amount and deriving the type from the sign.
func (s *DiscoverService) Import(ctx context.Context, userID string, rows []ImportedTransaction) ([]core.Transaction, error) {
	created := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		txType := core.TransactionIncome
		if row.Amount.IsNegative() {
			txType = core.TransactionExpense
		}
		category := row.Category
		if category == "" {
			category = "Discover Import"
		}

		t := core.Transaction{
			UserID:      userID,
			Amount:      row.Amount.Abs(),
			Type:        txType,
			Category:    category,
			Description: row.Description,
			Date:        row.Date,
		}
		if err := s.transactions.repo.CreateTransaction(ctx, &t); err != nil {
			return nil, err
		}
		s.transactions.afterWrite(ctx, t.ID, userID, amqp.ActionImported)
		created = append(created, t)
	}
	return created, nil
}
