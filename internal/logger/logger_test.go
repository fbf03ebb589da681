package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorLogger(t *testing.T) {
	errLog := GetErrorLogger()
	require.NotNil(t, errLog)

	// Logger error và app là hai instance riêng biệt
	assert.NotSame(t, GetAppLogger(), errLog)

	// Gọi lại trả về cùng một instance
	assert.Same(t, errLog, GetErrorLogger())

	var buf bytes.Buffer
	errLog.SetOutput(&buf)
	errLog.WithError(assert.AnError).Error("cycle failed")
	assert.Contains(t, buf.String(), "cycle failed")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}
