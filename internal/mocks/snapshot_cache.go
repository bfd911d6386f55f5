package mocks

import (
	"context"

	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/stretchr/testify/mock"
)

type SnapshotCache struct {
	mock.Mock
}

func (s *SnapshotCache) Load(ctx context.Context) (model.WalletSnapshot, bool, error) {
	args := s.Called(ctx)
	return args.Get(0).(model.WalletSnapshot), args.Bool(1), args.Error(2)
}

func (s *SnapshotCache) Save(ctx context.Context, snapshot model.WalletSnapshot) error {
	args := s.Called(ctx, snapshot)
	return args.Error(0)
}

func (s *SnapshotCache) Close() error {
	args := s.Called()
	return args.Error(0)
}
