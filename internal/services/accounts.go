package services

import (
	"context"

	"github.com/shopspring/decimal"

	"productiv/internal/core"
	"productiv/internal/storage"
)

type AccountService struct {
	repo *storage.SQLiteRepository
}

func NewAccountService(repo *storage.SQLiteRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Balances carries the cash and bank balances returned by balance reads
// and by transfers.
type Balances struct {
	CashBalance decimal.Decimal `json:"cashBalance"`
	BankBalance decimal.Decimal `json:"bankBalance"`
}

func (s *AccountService) Balances(ctx context.Context, userID string) (Balances, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Balances{}, err
	}
	return Balances{CashBalance: u.CashBalance, BankBalance: u.BankBalance}, nil
}

// SetBalances overwrites one or both balances; nil leaves a balance as is.
func (s *AccountService) SetBalances(ctx context.Context, userID string, cash, bank *decimal.Decimal) (Balances, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Balances{}, err
	}
	if cash != nil {
		u.CashBalance = *cash
	}
	if bank != nil {
		u.BankBalance = *bank
	}
	if err := s.repo.UpdateBalances(ctx, userID, u.CashBalance, u.BankBalance); err != nil {
		return Balances{}, err
	}
	return Balances{CashBalance: u.CashBalance, BankBalance: u.BankBalance}, nil
}

// Transfer moves amount between the user's cash and bank accounts.
// Both balances change in a single UPDATE so a crash cannot leave
// money applied on one side only.
func (s *AccountService) Transfer(ctx context.Context, userID string, from, to core.Account, amount decimal.Decimal) (Balances, error) {
	if from == to {
		return Balances{}, core.ErrSameAccount
	}

	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return Balances{}, err
	}

	cash, bank := u.CashBalance, u.BankBalance
	if from == core.AccountCash {
		if cash.LessThan(amount) {
			return Balances{}, core.ErrInsufficientFunds
		}
		cash = cash.Sub(amount)
		bank = bank.Add(amount)
	} else {
		if bank.LessThan(amount) {
			return Balances{}, core.ErrInsufficientFunds
		}
		bank = bank.Sub(amount)
		cash = cash.Add(amount)
	}

	if err := s.repo.UpdateBalances(ctx, userID, cash, bank); err != nil {
		return Balances{}, err
	}
	return Balances{CashBalance: cash, BankBalance: bank}, nil
}
