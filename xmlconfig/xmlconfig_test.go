package xmlconfig_test

import (
	"sync"
	"testing"

	"github.com/cobaltlog/hier"
	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/level"
	"github.com/cobaltlog/hier/xmlconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAppender struct {
	mu       sync.Mutex
	name     string
	Target   string
	Retries  int
	Active   bool
	messages []string
	nested   []appender.Appender
}

func newMemoryAppender() appender.Appender { return &memoryAppender{} }

func (a *memoryAppender) Name() string        { return a.name }
func (a *memoryAppender) SetName(name string) { a.name = name }

func (a *memoryAppender) Append(e appender.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, e.Message())
	for _, n := range a.nested {
		_ = n.Append(e)
	}
	return nil
}

func (a *memoryAppender) Close() error { return nil }

func (a *memoryAppender) ActivateOptions() { a.Active = true }

func (a *memoryAppender) AddAppender(n appender.Appender) { a.nested = append(a.nested, n) }
func (a *memoryAppender) RemoveAppender(appender.Appender) {}
func (a *memoryAppender) RemoveAppenderByName(string)       {}
func (a *memoryAppender) RemoveAllAppenders()               { a.nested = nil }
func (a *memoryAppender) Appenders() []appender.Appender    { return a.nested }

func registryWithMemory() *xmlconfig.PluginRegistry {
	reg := xmlconfig.NewPluginRegistry()
	reg.Register("memory", newMemoryAppender)
	return reg
}

func TestConfigureWiresLoggerToNamedAppenderWithOptions(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="A1" type="memory">
    <param name="target" value="console"/>
    <param name="retries" value="3"/>
  </appender>
  <logger name="svc.billing">
    <level value="WARN"/>
    <appender-ref ref="A1"/>
  </logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))

	log := h.GetLogger("svc.billing", nil)
	require.Len(t, log.Appenders(), 1)
	a := log.Appenders()[0].(*memoryAppender)
	assert.Equal(t, "console", a.Target)
	assert.Equal(t, 3, a.Retries)
	assert.True(t, a.Active)
	assert.Equal(t, level.WARN.Value, log.EffectiveLevel().Value)
	assert.True(t, h.Configured())
}

func TestConfigureOverwriteResetsBeforeApplying(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	log := h.GetLogger("svc", nil)
	warn := level.WARN
	log.SetLevel(&warn)
	log.SetAdditivity(false)

	doc := []byte(`<log4net update="Overwrite"></log4net>`)
	require.NoError(t, xmlconfig.Configure(h, doc, nil))

	assert.Nil(t, log.Level())
	assert.True(t, log.Additivity())
}

func TestConfigureMergeDoesNotReset(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	log := h.GetLogger("svc", nil)
	warn := level.WARN
	log.SetLevel(&warn)

	doc := []byte(`<log4net></log4net>`)
	require.NoError(t, xmlconfig.Configure(h, doc, nil))

	assert.Equal(t, level.WARN.Value, log.Level().Value)
}

func TestConfigureUnresolvableAppenderRefIsIsolated(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <logger name="svc">
    <appender-ref ref="missing"/>
  </logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	assert.Empty(t, h.GetLogger("svc", nil).Appenders())
	assert.NotEmpty(t, h.ConfigurationMessages())
}

func TestConfigureRootLevelInheritedIsIgnoredWithWarning(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	before := h.Root().Level()
	doc := []byte(`<log4net><root><level value="inherited"/></root></log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, nil))
	assert.Equal(t, before.Value, h.Root().Level().Value)
	assert.NotEmpty(t, h.ConfigurationMessages())
}

func TestConfigureNonRootInheritedClearsLevel(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	log := h.GetLogger("svc", nil)
	warn := level.WARN
	log.SetLevel(&warn)

	doc := []byte(`<log4net><logger name="svc"><level value="inherited"/></logger></log4net>`)
	require.NoError(t, xmlconfig.Configure(h, doc, nil))
	assert.Nil(t, log.Level())
}

func TestConfigureNestedAppenderRefWiresAttachableContainer(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="inner" type="memory"/>
  <appender name="outer" type="memory">
    <appender-ref ref="inner"/>
  </appender>
  <root>
    <appender-ref ref="outer"/>
  </root>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	outer := h.Root().Appenders()[0].(*memoryAppender)
	require.Len(t, outer.nested, 1)
	assert.Equal(t, outer.nested[0], outer.Appenders()[0])
}

func TestConfigureGenericParamSetsRepositoryProperty(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`<log4net><param name="env" value="staging"/></log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, nil))
	v, ok := h.Property("env")
	require.True(t, ok)
	assert.Equal(t, "staging", v)
}

func TestConfigureThresholdAppliedFromRootAttribute(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`<log4net threshold="ERROR"></log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, nil))
	assert.Equal(t, level.ERROR.Value, h.Threshold().Value)
}

func TestConfigureRejectsWrongRootElement(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	err := xmlconfig.Configure(h, []byte(`<notlog4net/>`), nil)
	require.Error(t, err)
	var cfgErr *xmlconfig.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfigureIsIdempotentUnderRepeatedMerge(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="A1" type="memory"/>
  <logger name="svc"><appender-ref ref="A1"/></logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))

	assert.Len(t, h.GetLogger("svc", nil).Appenders(), 1)
}

func TestConfigureAppenderDeclaredNameIsStampedOntoInstance(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="A1" type="memory"/>
  <root><appender-ref ref="A1"/></root>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	assert.Equal(t, "A1", h.Root().Appenders()[0].Name())
}

func TestConfigureMergeReusesSameAppenderIdentityAcrossCalls(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="A1" type="memory"/>
  <logger name="svc"><appender-ref ref="A1"/></logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	first := h.GetLogger("svc", nil).Appenders()[0]

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	second := h.GetLogger("svc", nil).Appenders()[0]

	assert.Same(t, first, second)
}

func TestConfigureOverwriteBuildsFreshAppenderIdentity(t *testing.T) {
	h := hier.NewHierarchy("t", nil)
	doc := []byte(`
<log4net>
  <appender name="A1" type="memory"/>
  <logger name="svc"><appender-ref ref="A1"/></logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	first := h.GetLogger("svc", nil).Appenders()[0]

	overwriteDoc := []byte(`
<log4net update="Overwrite">
  <appender name="A1" type="memory"/>
  <logger name="svc"><appender-ref ref="A1"/></logger>
</log4net>`)
	require.NoError(t, xmlconfig.Configure(h, overwriteDoc, registryWithMemory()))
	second := h.GetLogger("svc", nil).Appenders()[0]

	assert.NotSame(t, first, second)
}

func TestConfigureEmitDebugTracesAppliedElements(t *testing.T) {
	var messages []string
	sink := diagnostic.New(diagnostic.Factories{
		diagnostic.All: func(diagnostic.Level) diagnostic.Func {
			return func(msg string, _ diagnostic.Fields) { messages = append(messages, msg) }
		},
	})
	h := hier.NewHierarchy("t", sink)
	doc := []byte(`
<log4net emitDebug="true">
  <appender name="A1" type="memory"/>
  <logger name="svc"><appender-ref ref="A1"/></logger>
</log4net>`)

	require.NoError(t, xmlconfig.Configure(h, doc, registryWithMemory()))
	assert.NotEmpty(t, messages)
}
