package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind はコラボレーター障害の分類
type ErrorKind string

const (
	KindNetwork ErrorKind = "network" // 到達不能・タイムアウト
	KindServer  ErrorKind = "server"  // 5xx相当
	KindClient  ErrorKind = "client"  // 4xx相当（条件の不正）
)

type QueryError struct {
	Kind    ErrorKind
	Status  int // HTTPステータス（不明なら0）
	Message string
}

func (e *QueryError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Retryable は再試行に意味がある障害か
func (e *QueryError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

func NewQueryError(kind ErrorKind, status int, message string) error {
	return &QueryError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	ok := errors.As(err, &qe)
	return qe, ok
}
