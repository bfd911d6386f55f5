package checkout

import (
	"crypto/subtle"
	"sync"

	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/model"
)

type result struct {
	response model.GatewayResponse
	err      error
}

// session is one open checkout. It settles at most once.
type session struct {
	id      string
	token   string
	options gateway.Options

	once   sync.Once
	result chan result
}

func newSession(id, token string, options gateway.Options) *session {
	return &session{id: id, token: token, options: options, result: make(chan result, 1)}
}

func (s *session) authorized(token string) bool {
	return subtle.ConstantTimeCompare([]byte(s.token), []byte(token)) == 1
}

func (s *session) settle(r result) bool {
	settled := false
	s.once.Do(func() {
		s.result <- r
		settled = true
	})

	return settled
}
