package simpletxmanager

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable_ThroughWrapChain(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	assert.True(t, isRetryable(serialization))
	assert.True(t, isRetryable(fmt.Errorf("%w: commit: %w", ErrTxFailed, serialization)))
	assert.False(t, isRetryable(&pq.Error{Code: "23505"}))
}

func TestRetrySerializable(t *testing.T) {
	attempts := 0
	err := retrySerializable(func() error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40P01"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
