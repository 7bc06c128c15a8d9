package service

import (
	"context"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type walletService struct {
	wallets repository.WalletRepository
}

func NewWalletService(wallets repository.WalletRepository) WalletService {
	return &walletService{wallets: wallets}
}

func (s *walletService) GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return s.wallets.Get(ctx, userID)
}

func (s *walletService) ListTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.wallets.ListTransactions(ctx, userID, page, pageSize)
}
