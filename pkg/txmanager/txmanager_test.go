package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(serializationFailure()))
	assert.True(t, isRetryable(&pq.Error{Code: "40P01"}))

	assert.False(t, isRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("plain error")))
	assert.False(t, isRetryable(nil))
}

func TestIsRetryable_ThroughWrapChain(t *testing.T) {
	// Так заворачивает ошибку коммита run
	commitErr := fmt.Errorf("%w: commit: %w", ErrTxFailed, serializationFailure())
	assert.True(t, isRetryable(commitErr))

	// Так ошибку из транзакции пробрасывают репозиторий и usecase
	repoErr := fmt.Errorf("repository: exec: %w", serializationFailure())
	ucErr := fmt.Errorf("internal error: %w", repoErr)
	assert.True(t, isRetryable(ucErr))
}

func TestRetrySerializable_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := retrySerializable(func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("%w: commit: %w", ErrTxFailed, serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetrySerializable_NonRetryableReturnsImmediately(t *testing.T) {
	attempts := 0
	failure := errors.New("constraint violation")

	err := retrySerializable(func() error {
		attempts++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, attempts)
}

func TestRetrySerializable_Exhausted(t *testing.T) {
	attempts := 0
	err := retrySerializable(func() error {
		attempts++
		return serializationFailure()
	})

	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxRetries, attempts)
}
