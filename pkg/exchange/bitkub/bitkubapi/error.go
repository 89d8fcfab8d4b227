package bitkubapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/c9s/requestgen"
)

// ErrorCode is the integer carried in the "error" field of every response body.
// See https://github.com/bitkub/bitkub-official-api-docs/blob/master/restful-api.md#error-codes
type ErrorCode int

const (
	ErrorCodeNoError                        ErrorCode = 0
	ErrorCodeInvalidJSONPayload             ErrorCode = 1
	ErrorCodeMissingAPIKey                  ErrorCode = 2
	ErrorCodeInvalidAPIKey                  ErrorCode = 3
	ErrorCodeAPIPendingForActivation        ErrorCode = 4
	ErrorCodeIPNotAllowed                   ErrorCode = 5
	ErrorCodeInvalidSignature               ErrorCode = 6
	ErrorCodeMissingTimestamp               ErrorCode = 7
	ErrorCodeInvalidTimestamp               ErrorCode = 8
	ErrorCodeInvalidUser                    ErrorCode = 9
	ErrorCodeInvalidParameter               ErrorCode = 10
	ErrorCodeInvalidSymbol                  ErrorCode = 11
	ErrorCodeInvalidAmount                  ErrorCode = 12
	ErrorCodeInvalidRate                    ErrorCode = 13
	ErrorCodeImproperRate                   ErrorCode = 14
	ErrorCodeAmountTooLow                   ErrorCode = 15
	ErrorCodeFailedToGetBalance             ErrorCode = 16
	ErrorCodeEmptyWallet                    ErrorCode = 17
	ErrorCodeInsufficientBalance            ErrorCode = 18
	ErrorCodeFailedToInsertOrder            ErrorCode = 19
	ErrorCodeFailedToDeductBalance          ErrorCode = 20
	ErrorCodeInvalidOrderForCancellation    ErrorCode = 21
	ErrorCodeInvalidSide                    ErrorCode = 22
	ErrorCodeFailedToUpdateOrderStatus      ErrorCode = 23
	ErrorCodeInvalidOrderForLookup          ErrorCode = 24
	ErrorCodeKYCLevel1Required              ErrorCode = 25
	ErrorCodeLimitExceeds                   ErrorCode = 30
	ErrorCodePendingWithdrawalExists        ErrorCode = 40
	ErrorCodeInvalidCurrencyForWithdrawal   ErrorCode = 41
	ErrorCodeAddressNotInWhitelist          ErrorCode = 42
	ErrorCodeFailedToDeductCrypto           ErrorCode = 43
	ErrorCodeFailedToCreateWithdrawalRecord ErrorCode = 44
	ErrorCodeNonceMustBeNumeric             ErrorCode = 45
	ErrorCodeInvalidNonce                   ErrorCode = 46
	ErrorCodeWithdrawalLimitExceeds         ErrorCode = 47
	ErrorCodeInvalidBankAccount             ErrorCode = 48
	ErrorCodeBankLimitExceeds               ErrorCode = 49
	ErrorCodeWithdrawalUnderMaintenance     ErrorCode = 51
	ErrorCodeInvalidPermission              ErrorCode = 52
	ErrorCodeInvalidInternalAddress         ErrorCode = 53
	ErrorCodeAddressDeprecated              ErrorCode = 54
	ErrorCodeCancelOnlyMode                 ErrorCode = 55
	ErrorCodeSuspendedFromPurchasing        ErrorCode = 56
	ErrorCodeSuspendedFromSelling           ErrorCode = 57
	ErrorCodeServerError                    ErrorCode = 90
)

var errorCodeMessages = map[ErrorCode]string{
	ErrorCodeNoError:                        "no error",
	ErrorCodeInvalidJSONPayload:             "invalid JSON payload",
	ErrorCodeMissingAPIKey:                  "missing X-BTK-APIKEY",
	ErrorCodeInvalidAPIKey:                  "invalid API key",
	ErrorCodeAPIPendingForActivation:        "API pending for activation",
	ErrorCodeIPNotAllowed:                   "IP not allowed",
	ErrorCodeInvalidSignature:               "missing / invalid signature",
	ErrorCodeMissingTimestamp:               "missing timestamp",
	ErrorCodeInvalidTimestamp:               "invalid timestamp",
	ErrorCodeInvalidUser:                    "invalid user",
	ErrorCodeInvalidParameter:               "invalid parameter",
	ErrorCodeInvalidSymbol:                  "invalid symbol",
	ErrorCodeInvalidAmount:                  "invalid amount",
	ErrorCodeInvalidRate:                    "invalid rate",
	ErrorCodeImproperRate:                   "improper rate",
	ErrorCodeAmountTooLow:                   "amount too low",
	ErrorCodeFailedToGetBalance:             "failed to get balance",
	ErrorCodeEmptyWallet:                    "wallet is empty",
	ErrorCodeInsufficientBalance:            "insufficient balance",
	ErrorCodeFailedToInsertOrder:            "failed to insert order into db",
	ErrorCodeFailedToDeductBalance:          "failed to deduct balance",
	ErrorCodeInvalidOrderForCancellation:    "invalid order for cancellation",
	ErrorCodeInvalidSide:                    "invalid side",
	ErrorCodeFailedToUpdateOrderStatus:      "failed to update order status",
	ErrorCodeInvalidOrderForLookup:          "invalid order for lookup",
	ErrorCodeKYCLevel1Required:              "KYC level 1 is required to proceed",
	ErrorCodeLimitExceeds:                   "limit exceeds",
	ErrorCodePendingWithdrawalExists:        "pending withdrawal exists",
	ErrorCodeInvalidCurrencyForWithdrawal:   "invalid currency for withdrawal",
	ErrorCodeAddressNotInWhitelist:          "address is not in whitelist",
	ErrorCodeFailedToDeductCrypto:           "failed to deduct crypto",
	ErrorCodeFailedToCreateWithdrawalRecord: "failed to create withdrawal record",
	ErrorCodeNonceMustBeNumeric:             "nonce has to be numeric",
	ErrorCodeInvalidNonce:                   "invalid nonce",
	ErrorCodeWithdrawalLimitExceeds:         "withdrawal limit exceeds",
	ErrorCodeInvalidBankAccount:             "invalid bank account",
	ErrorCodeBankLimitExceeds:               "bank limit exceeds",
	ErrorCodeWithdrawalUnderMaintenance:     "withdrawal is under maintenance",
	ErrorCodeInvalidPermission:              "invalid permission",
	ErrorCodeInvalidInternalAddress:         "invalid internal address",
	ErrorCodeAddressDeprecated:              "address has been deprecated",
	ErrorCodeCancelOnlyMode:                 "cancel only mode",
	ErrorCodeSuspendedFromPurchasing:        "user has been suspended from purchasing",
	ErrorCodeSuspendedFromSelling:           "user has been suspended from selling",
	ErrorCodeServerError:                    "server error",
}

func (c ErrorCode) String() string {
	if msg, ok := errorCodeMessages[c]; ok {
		return msg
	}

	return fmt.Sprintf("unknown error code %d", int(c))
}

// APIResponse is the envelope shared by every bitkub endpoint.
type APIResponse struct {
	Error  ErrorCode       `json:"error"`
	Result json.RawMessage `json:"result,omitempty"`
}

func (r APIResponse) Validate() error {
	if r.Error != ErrorCodeNoError {
		return &APIError{Code: r.Error}
	}
	return nil
}

// APIError is an exchange-level rejection. The code is passed through untouched.
type APIError struct {
	Code ErrorCode

	// StatusCode is the HTTP status of the response that carried the code.
	StatusCode int

	Method, Path string
}

func (e *APIError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bitkub api error %d: %s", int(e.Code), e.Code.String())
	}

	return fmt.Sprintf("bitkub api error %d: %s (%s %s)", int(e.Code), e.Code.String(), e.Method, e.Path)
}

// IsErrorCode reports whether err carries the given bitkub error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// ErrorCodeOf returns the bitkub error code carried by err.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}

// HTTPError is returned for non-2xx responses whose body is not a bitkub envelope.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// toErrorResponse converts a non-2xx response of req into an error
func toErrorResponse(req *http.Request, response *requestgen.Response) error {
	var apiResponse APIResponse
	if err := response.DecodeJSON(&apiResponse); err == nil && apiResponse.Error != ErrorCodeNoError {
		apiErr := &APIError{
			Code:       apiResponse.Error,
			StatusCode: response.StatusCode,
		}
		if req != nil {
			apiErr.Method = req.Method
			apiErr.Path = req.URL.Path
		}
		return apiErr
	}

	httpErr := &HTTPError{
		StatusCode: response.StatusCode,
		Body:       response.Body,
	}
	if req != nil {
		httpErr.Method = req.Method
		httpErr.URL = req.URL.String()
	}
	return httpErr
}
