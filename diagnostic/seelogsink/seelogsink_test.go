package seelogsink_test

import (
	"bytes"
	"testing"

	"github.com/cihub/seelog"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/diagnostic/seelogsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlattensFieldsIntoMessageText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := seelog.LoggerFromWriterWithMinLevel(&buf, seelog.TraceLvl)
	require.NoError(t, err)

	sink := diagnostic.New(seelogsink.Bind(logger))
	sink.Log(diagnostic.Warn, "appender slow", diagnostic.Fields{"ms": 120})
	logger.Flush()

	out := buf.String()
	assert.Contains(t, out, "appender slow")
	assert.Contains(t, out, "ms=120")
}
