package xmlconfig

import (
	"testing"

	"github.com/cobaltlog/hier/appender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name      string
	Host      string
	Port      int
	activated int
}

func (f *fakePlugin) Name() string                { return f.name }
func (f *fakePlugin) SetName(name string)         { f.name = name }
func (f *fakePlugin) Append(appender.Event) error { return nil }
func (f *fakePlugin) Close() error                { return nil }
func (f *fakePlugin) ActivateOptions()            { f.activated++ }

func TestRegistryBuildDecodesOptionsCaseInsensitively(t *testing.T) {
	reg := NewPluginRegistry()
	reg.Register("fake", func() appender.Appender { return &fakePlugin{} })

	a, err := reg.build("A1", "fake", map[string]string{"HOST": "localhost", "port": "9000"})
	require.NoError(t, err)
	f := a.(*fakePlugin)
	assert.Equal(t, "localhost", f.Host)
	assert.Equal(t, 9000, f.Port)
	assert.Equal(t, 1, f.activated)
}

func TestRegistryBuildStampsDeclaredNameOntoInstance(t *testing.T) {
	reg := NewPluginRegistry()
	reg.Register("fake", func() appender.Appender { return &fakePlugin{} })

	a, err := reg.build("A1", "fake", nil)
	require.NoError(t, err)
	assert.Equal(t, "A1", a.Name())
}

func TestRegistryBuildUnknownTypeErrors(t *testing.T) {
	reg := NewPluginRegistry()
	_, err := reg.build("A1", "nope", nil)
	assert.Error(t, err)
}

func TestRegistryBuildWithNoOptionsStillActivates(t *testing.T) {
	reg := NewPluginRegistry()
	reg.Register("fake", func() appender.Appender { return &fakePlugin{} })

	a, err := reg.build("A1", "fake", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.(*fakePlugin).activated)
}
