package errs

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarriesKind(t *testing.T) {
	err := New(KeymapLoad, "bad modifier spelling")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KeymapLoad, kind)
	assert.Contains(t, err.Error(), "bad modifier spelling")
}

func TestWrapPreservesUnderlyingCause(t *testing.T) {
	err := Wrap(SettingsLoad, sql.ErrNoRows, "decoding settings.json")
	assert.True(t, Is(err, SettingsLoad))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(SettingsLoad, nil, "unreachable"))
}

func TestKindOfOnPlainErrorIsFalse(t *testing.T) {
	_, ok := KindOf(sql.ErrNoRows)
	assert.False(t, ok)
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, IsCancellation(New(Cancellation, "context canceled")))
	assert.False(t, IsCancellation(New(HookInstall, "access denied")))
}
