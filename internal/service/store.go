package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Bluepen/wallet-topup/internal/cache"
	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheSaveTimeout = 2 * time.Second

type WalletStore interface {
	Fetch(ctx context.Context) error
	Refresh(ctx context.Context) <-chan error
	ApplyConfirmedBalance(balance decimal.Decimal)
	Warm(ctx context.Context) bool
	State() StoreState
	Transactions(filter TransactionFilter) []model.WalletTransaction
}

// Store holds the last server-confirmed wallet snapshot. Its balance is only
// ever written from a wallet service response.
type Store struct {
	api     walletapi.WalletAPI
	cache   cache.SnapshotCache
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group

	mu         sync.RWMutex
	snapshot   model.WalletSnapshot
	loaded     bool
	inFlight   int
	errMsg     string
	generation uint64
}

func NewWalletStore(api walletapi.WalletAPI, c cache.SnapshotCache, m *metrics.Metrics, logger *zap.Logger) WalletStore {
	return &Store{api: api, cache: c, metrics: m, logger: logger, now: time.Now}
}

// Fetch loads balance, currency and history. Concurrent calls share one request
// unless a confirmed balance landed in between: a fetch that would be discarded
// is never joined.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	key := fmt.Sprintf("wallet:%d", generation)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return nil, s.fetch(context.WithoutCancel(ctx), generation)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) Refresh(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Fetch(context.WithoutCancel(ctx))
	}()

	return done
}

// ApplyConfirmedBalance adopts a balance returned by payment verification.
// Any fetch already in flight is discarded when it lands.
func (s *Store) ApplyConfirmedBalance(balance decimal.Decimal) {
	s.mu.Lock()
	s.generation++
	s.snapshot.Balance = balance
	s.loaded = true
	s.errMsg = ""
	snapshot := s.copySnapshot()
	s.mu.Unlock()

	s.metrics.SetConfirmedBalance(balance.InexactFloat64())
	s.logger.Info("Wallet balance confirmed", zap.String("balance", balance.String()))
	s.save(snapshot)
}

// Warm restores the cached snapshot if nothing fresher is loaded yet.
func (s *Store) Warm(ctx context.Context) bool {
	snapshot, ok, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load cached wallet snapshot", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return false
	}

	snapshot.Stale = true
	s.snapshot = snapshot
	s.loaded = true

	return true
}

func (s *Store) State() StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Snapshot:  s.copySnapshot(),
		Loaded:    s.loaded,
		IsLoading: s.inFlight > 0,
		Error:     s.errMsg,
	}
}

func (s *Store) Transactions(filter TransactionFilter) []model.WalletTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.WalletTransaction
	for _, tx := range s.snapshot.Transactions {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Reason != "" && tx.Reason != filter.Reason {
			continue
		}
		out = append(out, tx)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}

	return out
}

func (s *Store) fetch(ctx context.Context, generation uint64) error {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()

	resp, err := s.api.GetWallet(ctx)
	var snapshot model.WalletSnapshot
	if err == nil {
		snapshot, err = s.toSnapshot(resp.Data)
	}

	s.mu.Lock()
	s.inFlight--

	if generation != s.generation {
		s.mu.Unlock()

		s.metrics.RecordStoreFetch("superseded")
		s.logger.Debug("Discarding wallet fetch older than a confirmed balance", zap.Error(err))

		return nil
	}

	if err != nil {
		s.errMsg = fetchMessage(err)
		s.mu.Unlock()

		s.metrics.RecordStoreFetch("failed")
		s.logger.Error("Failed to fetch wallet", zap.Error(err))

		return NewServiceError(constants.ErrCodeWalletFetch, err)
	}

	s.snapshot = snapshot
	s.loaded = true
	s.errMsg = ""
	s.mu.Unlock()

	s.metrics.RecordStoreFetch("ok")
	s.metrics.SetConfirmedBalance(snapshot.Balance.InexactFloat64())
	s.save(snapshot)

	return nil
}

func (s *Store) toSnapshot(data walletapi.WalletData) (model.WalletSnapshot, error) {
	if !data.Balance.Valid || data.Balance.Decimal.IsNegative() {
		return model.WalletSnapshot{}, ErrInvalidBalance
	}

	transactions := make([]model.WalletTransaction, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		transactions = append(transactions, model.WalletTransaction{
			ID:                  tx.ID,
			Type:                model.TransactionType(tx.Type),
			Reason:              model.TransactionReason(tx.Reason),
			Amount:              tx.Amount,
			BalanceAfter:        tx.BalanceAfter,
			Description:         tx.Description,
			RelatedAssignmentID: tx.RelatedAssignmentID,
			PaymentRef:          tx.PaymentRef,
			Date:                tx.Date,
		})
	}

	slices.SortStableFunc(transactions, func(a, b model.WalletTransaction) int {
		return b.Date.Compare(a.Date)
	})

	return model.WalletSnapshot{
		WalletBalance: model.WalletBalance{
			Balance:  data.Balance.Decimal,
			Currency: data.Currency,
		},
		Transactions: transactions,
		FetchedAt:    s.now(),
	}, nil
}

func (s *Store) save(snapshot model.WalletSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheSaveTimeout)
	defer cancel()

	if err := s.cache.Save(ctx, snapshot); err != nil {
		s.logger.Warn("Failed to cache wallet snapshot", zap.Error(err))
	}
}

// copySnapshot must be called with s.mu held.
func (s *Store) copySnapshot() model.WalletSnapshot {
	snapshot := s.snapshot
	snapshot.Transactions = slices.Clone(s.snapshot.Transactions)

	return snapshot
}

func fetchMessage(err error) string {
	var apiErr *walletapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return constants.ErrMsgWalletFetch
}
