package canbus

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is a firmware status code surfaced as an error. A nil error means
// OK; every other outcome of a bus request is one of these values, possibly
// wrapped with additional context.
type ErrorCode int32

// Status codes reported by the device firmware and the CAN driver layer.
const (
	errOK                             ErrorCode = 0
	ErrMsgStale                       ErrorCode = 1
	ErrTxFailed                       ErrorCode = -1
	ErrInvalidParamValue              ErrorCode = -2
	ErrRxTimeout                      ErrorCode = -3
	ErrTxTimeout                      ErrorCode = -4
	ErrUnexpectedArbID                ErrorCode = -5
	ErrBufferFull                     ErrorCode = 6
	ErrSensorNotPresent               ErrorCode = -7
	ErrFirmwareTooOld                 ErrorCode = -8
	ErrGeneralError                   ErrorCode = -100
	ErrSigNotUpdated                  ErrorCode = -200
	ErrNotAllPIDValuesSet             ErrorCode = -201
	ErrFeatureNotSupported            ErrorCode = -450
	ErrNotImplemented                 ErrorCode = -451
	ErrFirmVersionCouldNotBeRetrieved ErrorCode = -453
)

var errorCodeNames = map[ErrorCode]string{
	errOK:                             "OK",
	ErrMsgStale:                       "CAN message stale",
	ErrTxFailed:                       "CAN tx failed",
	ErrInvalidParamValue:              "invalid parameter value",
	ErrRxTimeout:                      "CAN rx timeout",
	ErrTxTimeout:                      "CAN tx timeout",
	ErrUnexpectedArbID:                "unexpected arbitration ID",
	ErrBufferFull:                     "buffer full",
	ErrSensorNotPresent:               "sensor not present",
	ErrFirmwareTooOld:                 "firmware too old",
	ErrGeneralError:                   "general error",
	ErrSigNotUpdated:                  "signal not updated",
	ErrNotAllPIDValuesSet:             "not all PID values updated",
	ErrFeatureNotSupported:            "feature not supported",
	ErrNotImplemented:                 "not implemented",
	ErrFirmVersionCouldNotBeRetrieved: "firmware version could not be retrieved",
}

func (e ErrorCode) Error() string {
	if name, ok := errorCodeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("device error %d", int32(e))
}

// Code extracts the ErrorCode from err, unwrapping as needed. A nil err
// reports code 0 (OK); an err with no ErrorCode in its chain reports
// ErrGeneralError.
func Code(err error) ErrorCode {
	if err == nil {
		return errOK
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return ErrGeneralError
}
