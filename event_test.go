package hier

import (
	"errors"
	"testing"

	"github.com/cobaltlog/hier/level"
	"github.com/stretchr/testify/assert"
)

func TestLoggingEventMessageStringifiesNonStrings(t *testing.T) {
	e := newLoggingEvent("a.b", level.INFO, 42, nil, "", nil, 0)
	assert.Equal(t, "42", e.Message())
}

func TestLoggingEventLocationIsCapturedLazilyAndOnce(t *testing.T) {
	e := newLoggingEvent("a.b", level.INFO, "hi", nil, "", nil, 0)
	assert.False(t, e.hasLocation)
	first := e.LocationInfo()
	assert.True(t, e.hasLocation)
	assert.NotEmpty(t, first.Function)

	second := e.LocationInfo()
	assert.Equal(t, first, second)
}

func TestLoggingEventFixAllPopulatesEveryField(t *testing.T) {
	e := newLoggingEvent("a.b", level.WARN, "hi", errors.New("boom"), "host", map[string]string{"k": "v"}, 0)
	e.Fix(FixAll)
	assert.NotZero(t, e.FixFlags()&FixLocationInfo)
	assert.NotZero(t, e.FixFlags()&FixUserName)
	assert.NotZero(t, e.FixFlags()&FixThreadName)
	assert.Equal(t, "host", e.Domain())
	assert.Equal(t, "v", e.Properties()["k"])
	assert.Equal(t, "boom", e.Exception().Error())
}

func TestLoggingEventAppenderViewAccessors(t *testing.T) {
	e := newLoggingEvent("a.b.c", level.ERROR, "oops", nil, "", nil, 0)
	assert.Equal(t, "a.b.c", e.LoggerName())
	assert.Equal(t, level.ERROR.Value, e.LevelValue())
	assert.Equal(t, "ERROR", e.LevelName())
	assert.Equal(t, "oops", e.Message())
}
