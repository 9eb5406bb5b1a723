package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldRunID, "abc").WithError(errors.New("boom"))

	mock.Info("root entry")
	child.Warn("child entry", F(FieldCount, 2))

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.True(t, mock.HasEntry("WARN", "child entry"))

	warn := mock.EntriesByLevel("WARN")
	require.Len(t, warn, 1)
	assert.Equal(t, "abc", warn[0].FieldValue(FieldRunID))
	assert.Equal(t, 2, warn[0].FieldValue(FieldCount))
	assert.EqualError(t, warn[0].Error, "boom")
	assert.Nil(t, warn[0].FieldValue("missing"))
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Debug("first")
	assert.True(t, mock.HasEntry("DEBUG", "first"))
}
