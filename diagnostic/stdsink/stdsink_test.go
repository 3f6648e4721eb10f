package stdsink_test

import (
	"bytes"
	"testing"

	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/diagnostic/stdsink"
	"github.com/stretchr/testify/assert"
)

func TestNewWithForceColorOffWritesPlainLine(t *testing.T) {
	var buf bytes.Buffer
	sink := diagnostic.New(stdsink.New(&buf, false))
	sink.Log(diagnostic.Error, "dispatch failed", diagnostic.Fields{"logger": "com.foo"})

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "dispatch failed")
	assert.Contains(t, out, "logger=com.foo")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewWithForceColorOnWrapsAnsiCodes(t *testing.T) {
	var buf bytes.Buffer
	sink := diagnostic.New(stdsink.New(&buf, true))
	sink.Log(diagnostic.Warn, "slow appender", nil)

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestBareBufferIsNeverAutoDetectedAsTerminal(t *testing.T) {
	var buf bytes.Buffer
	sink := diagnostic.New(stdsink.New(&buf))
	sink.Log(diagnostic.Info, "config loaded", nil)

	assert.NotContains(t, buf.String(), "\x1b[")
}
