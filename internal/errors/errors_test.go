package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

type codeError struct{ code int }

func (e *codeError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestWrap_KeepsSentinelAndAddsStack(t *testing.T) {
	err := Wrapf(errSentinel, "load %s", "veluna_orders")

	assert.EqualError(t, err, "load veluna_orders: sentinel")
	assert.True(t, Is(err, errSentinel))
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestWrap_KeepsSentinelAndAddsStack")
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

func TestAs_ThroughJoinAndStack(t *testing.T) {
	err := Join(WithStack(&codeError{code: 7}), Errorf("other"))

	var target *codeError
	if assert.True(t, As(err, &target)) {
		assert.Equal(t, 7, target.code)
	}
}
