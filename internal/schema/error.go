package schema

import (
	"sync"
)

type TierErrorCode string

const (
	RemoteError     TierErrorCode = "REMOTE_ERROR"
	TimeoutError    TierErrorCode = "TIMEOUT_ERROR"
	ConnectionError TierErrorCode = "CONNECTION_ERROR"
	ConfigError     TierErrorCode = "CONFIG_ERROR"
	VaultError      TierErrorCode = "VAULT_ERROR"
)

type TierError struct {
	Code    TierErrorCode `json:"code"`
	Message string        `json:"message"`
}

type TierErrors []TierError

type errorsBucket struct {
	errors TierErrors
	sync.Mutex
}

func NewErrorsBucket() errorsBucket {
	return errorsBucket{
		errors: []TierError{},
	}
}

func (e *errorsBucket) AddErrors(errors []TierError) {
	e.Lock()
	e.errors = append(e.errors, errors...)
	e.Unlock()
}

func (e *errorsBucket) AddError(err TierError) {
	e.Lock()
	e.errors = append(e.errors, err)
	e.Unlock()
}

func (e *errorsBucket) Errors() *TierErrors {
	return &e.errors
}

func NewRemoteError(msg string) TierError {
	return TierError{
		Code:    RemoteError,
		Message: msg,
	}
}

func NewTimeoutError(msg string) TierError {
	return TierError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) TierError {
	return TierError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewConfigError(msg string) TierError {
	return TierError{
		Code:    ConfigError,
		Message: msg,
	}
}

func NewVaultError(msg string) TierError {
	return TierError{
		Code:    VaultError,
		Message: msg,
	}
}
