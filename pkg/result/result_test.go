package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessExposesValue(t *testing.T) {
	r := Success(42)

	assert.Equal(t, KindSuccess, r.Kind())
	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsError())
	assert.Equal(t, 42, r.Value())

	v, ok := r.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.NoError(t, r.Err())
}

func TestErrorExposesMessageAndData(t *testing.T) {
	r := Error[int]("Network Error: refused", nil)

	assert.Equal(t, KindError, r.Kind())
	assert.Equal(t, "Network Error: refused", r.Message())
	_, ok := r.Data()
	assert.False(t, ok)

	_, ok = r.Get()
	assert.False(t, ok)

	var failure *Failure
	require.True(t, errors.As(r.Err(), &failure))
	assert.Equal(t, "Network Error: refused", failure.Message)
}

func TestErrorCarriesPartialData(t *testing.T) {
	partial := 7
	r := Error("partial", &partial)

	data, ok := r.Data()
	require.True(t, ok)
	assert.Equal(t, 7, data)
}

func TestAccessorsPanicOnWrongVariant(t *testing.T) {
	assert.Panics(t, func() { Error[string]("boom", nil).Value() })
	assert.Panics(t, func() { Success("ok").Message() })
	assert.Panics(t, func() { Success("ok").Data() })

	var zero Result[string]
	assert.Equal(t, KindInvalid, zero.Kind())
	assert.Panics(t, func() { zero.Value() })
	assert.Panics(t, func() { zero.Message() })
	assert.Error(t, zero.Err())
}

func TestMatchCallsOneBranch(t *testing.T) {
	describe := func(r Result[int]) string {
		return Match(r,
			func(v int) string { return "ok" },
			func(msg string, _ *int) string { return "err:" + msg },
		)
	}

	assert.Equal(t, "ok", describe(Success(1)))
	assert.Equal(t, "err:nope", describe(Error[int]("nope", nil)))
	assert.Panics(t, func() { describe(Result[int]{}) })
}

func TestString(t *testing.T) {
	assert.Equal(t, "Success(3)", Success(3).String())
	assert.Equal(t, `Error("bad")`, Error[int]("bad", nil).String())
}
