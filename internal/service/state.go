package service

import (
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/shopspring/decimal"
)

type Phase string

const (
	PhaseIdle                  Phase = "idle"
	PhaseLoadingGateway        Phase = "loadingGateway"
	PhaseCreatingOrder         Phase = "creatingOrder"
	PhaseAwaitingGatewayResult Phase = "awaitingGatewayResult"
	PhaseVerifying             Phase = "verifying"
	PhaseSettled               Phase = "settled"
)

// FlowState is one step of a top-up attempt. The concrete types below are the only implementations.
type FlowState interface {
	Phase() Phase
	flowState()
}

type Idle struct{}

type LoadingGateway struct{}

type CreatingOrder struct {
	Amount decimal.Decimal
}

type AwaitingGatewayResult struct {
	Order model.PaymentOrder
}

type Verifying struct {
	Order    model.PaymentOrder
	Response model.GatewayResponse
}

type Settled struct {
	Outcome Outcome
	Balance decimal.Decimal
	Message string
}

func (Idle) Phase() Phase                  { return PhaseIdle }
func (LoadingGateway) Phase() Phase        { return PhaseLoadingGateway }
func (CreatingOrder) Phase() Phase         { return PhaseCreatingOrder }
func (AwaitingGatewayResult) Phase() Phase { return PhaseAwaitingGatewayResult }
func (Verifying) Phase() Phase             { return PhaseVerifying }
func (Settled) Phase() Phase               { return PhaseSettled }

func (Idle) flowState()                  {}
func (LoadingGateway) flowState()        {}
func (CreatingOrder) flowState()         {}
func (AwaitingGatewayResult) flowState() {}
func (Verifying) flowState()             {}
func (Settled) flowState()               {}
