package constants

const (
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeFlowInProgress     = "FLOW_IN_PROGRESS"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeOrderCreation      = "ORDER_CREATION_ERROR"
	ErrCodePaymentCancelled   = "PAYMENT_CANCELLED"
	ErrCodePaymentFailed      = "PAYMENT_FAILED"
	ErrCodeVerification       = "VERIFICATION_ERROR"
	ErrCodeWalletFetch        = "WALLET_FETCH_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeInvalidArguments   = "INVALID_ARGUMENTS"

	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrCodeSessionSettled     = "SESSION_SETTLED"
	ErrCodeSessionForbidden   = "SESSION_FORBIDDEN"
	ErrCodeScriptUnavailable  = "SCRIPT_UNAVAILABLE"
)

const (
	ErrMsgConfiguration      = "wallet top-up is not configured"
	ErrMsgInvalidAmount      = "enter an amount of at least 1"
	ErrMsgFlowInProgress     = "a payment is already in progress"
	ErrMsgGatewayUnavailable = "payment gateway unavailable"
	ErrMsgOrderCreation      = "could not start the payment"
	ErrMsgPaymentCancelled   = "payment cancelled"
	ErrMsgPaymentFailed      = "payment failed"
	ErrMsgVerification       = "We couldn't confirm your payment. Check your transaction history or contact support."
	ErrMsgWalletFetch        = "could not load your wallet"
	ErrMsgInternalError      = "something went wrong"
	ErrMsgInvalidArguments   = "invalid command line arguments"

	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgSessionNotFound    = "checkout session not found"
	ErrMsgSessionSettled     = "checkout session already completed"
	ErrMsgSessionForbidden   = "checkout session token is missing or wrong"
	ErrMsgScriptUnavailable  = "checkout script not loaded"
)

var errorMessages = map[string]string{
	ErrCodeConfiguration:      ErrMsgConfiguration,
	ErrCodeInvalidAmount:      ErrMsgInvalidAmount,
	ErrCodeFlowInProgress:     ErrMsgFlowInProgress,
	ErrCodeGatewayUnavailable: ErrMsgGatewayUnavailable,
	ErrCodeOrderCreation:      ErrMsgOrderCreation,
	ErrCodePaymentCancelled:   ErrMsgPaymentCancelled,
	ErrCodePaymentFailed:      ErrMsgPaymentFailed,
	ErrCodeVerification:       ErrMsgVerification,
	ErrCodeWalletFetch:        ErrMsgWalletFetch,
	ErrCodeInternalError:      ErrMsgInternalError,
	ErrCodeInvalidArguments:   ErrMsgInvalidArguments,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeSessionNotFound:    ErrMsgSessionNotFound,
	ErrCodeSessionSettled:     ErrMsgSessionSettled,
	ErrCodeSessionForbidden:   ErrMsgSessionForbidden,
	ErrCodeScriptUnavailable:  ErrMsgScriptUnavailable,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

// GetHTTPStatus is used by the checkout server.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeSessionForbidden:
		return 403
	case ErrCodeSessionNotFound:
		return 404
	case ErrCodeSessionSettled:
		return 409
	case ErrCodeScriptUnavailable:
		return 503
	default:
		return 500
	}
}

// GetExitCode maps an error code to the CLI's process exit status.
func GetExitCode(code string) int {
	switch code {
	case "":
		return 0
	case ErrCodeConfiguration:
		return 78
	case ErrCodeInvalidAmount, ErrCodeFlowInProgress, ErrCodeInvalidArguments:
		return 64
	case ErrCodePaymentCancelled:
		return 3
	case ErrCodeVerification:
		return 4
	default:
		return 1
	}
}
