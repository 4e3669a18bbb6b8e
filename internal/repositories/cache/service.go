// Package cache provides the Redis-backed read cache for hot lookups:
// wallets by user and invoices by txid. Entries are invalidated whenever
// settlement or a ledger write mutates the underlying rows.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dilspay/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    ttl,
	}
}

func walletKey(userID uint) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

func invoiceKey(txid string) string {
	return fmt.Sprintf("invoice:txid:%s", txid)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	val, err := s.client.Get(ctx, walletKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	var wallet models.Wallet
	if err := json.Unmarshal([]byte(val), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, walletKey(wallet.UserID), data, s.ttl).Err()
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, walletKey(userID)).Err()
}

func (s *CacheService) GetInvoice(ctx context.Context, txid string) (*models.Invoice, error) {
	val, err := s.client.Get(ctx, invoiceKey(txid)).Result()
	if err != nil {
		return nil, err
	}
	var inv models.Invoice
	if err := json.Unmarshal([]byte(val), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *CacheService) SetInvoice(ctx context.Context, inv *models.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, invoiceKey(inv.Txid), data, s.ttl).Err()
}

func (s *CacheService) InvalidateInvoice(ctx context.Context, txid string) error {
	return s.client.Del(ctx, invoiceKey(txid)).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
