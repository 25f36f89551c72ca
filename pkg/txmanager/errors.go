package txmanager

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrBeginTx        = errors.New("txmanager: failed to begin transaction")
	ErrCommitTx       = errors.New("txmanager: failed to commit transaction")
	ErrTooManyRetries = errors.New("txmanager: transaction retries exhausted")
)

// SQLSTATE коды, которые различает менеджер
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeExclusionViolation   = "23P01"
	codeQueryCanceled        = "57014"
)

// sqlState извлекает SQLSTATE из ошибки lib/pq или pgx
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsSerializationFailure true для конфликтов сериализации и дедлоков Postgres,
// а также для codes.Aborted от Firestore
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return status.Code(err) == codes.Aborted
}

// IsExclusionViolation true, если сработал exclusion constraint (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return err != nil && sqlState(err) == codeExclusionViolation
}

// IsTimeout true, если транзакция не уложилась в дедлайн
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || sqlState(err) == codeQueryCanceled {
		return true
	}
	return status.Code(err) == codes.DeadlineExceeded
}

// IsUnavailable true для временных ошибок хранилища: исчерпанные ретраи,
// таймаут, потеря соединения. Запрос целиком можно повторить.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTooManyRetries) || errors.Is(err, driver.ErrBadConn) || IsTimeout(err) {
		return true
	}
	if IsSerializationFailure(err) {
		return true
	}
	return status.Code(err) == codes.Unavailable
}
