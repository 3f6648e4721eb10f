package xmlconfig

import (
	"sync"

	"github.com/cobaltlog/hier/appender"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// PluginFactory returns a freshly-constructed, not-yet-configured Appender
// for one `type` attribute value. The factory's return value is a concrete
// Go struct, and options are bound to its exported fields by name, so no
// call site ever walks an arbitrary object with reflection.
type PluginFactory func() appender.Appender

// PluginRegistry maps a `type` attribute value to the PluginFactory that
// builds it.
type PluginRegistry struct {
	mu        sync.RWMutex
	factories map[string]PluginFactory
}

// NewPluginRegistry returns an empty registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{factories: make(map[string]PluginFactory)}
}

// Register binds typeName to factory. A later call with the same typeName
// replaces the earlier binding.
func (r *PluginRegistry) Register(typeName string, factory PluginFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = factory
}

// build constructs typeName, stamps the declared name onto it if it
// implements appender.Named (the <appender name="..."> attribute belongs
// on the object, not just in the registry's own bookkeeping), decodes
// options via mapstructure (weakly-typed, so XML attribute strings like
// "true"/"1" bind to Go bool/int fields), and invokes ActivateOptions
// exactly once if the resulting Appender implements it.
func (r *PluginRegistry) build(name, typeName string, options map[string]string) (appender.Appender, error) {
	r.mu.RLock()
	factory, ok := r.factories[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown appender type %q", typeName)
	}

	instance := factory()
	if named, ok := instance.(appender.Named); ok {
		named.SetName(name)
	}
	if len(options) > 0 {
		generic := make(map[string]interface{}, len(options))
		for k, v := range options {
			generic[k] = v
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           instance,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "building option decoder for %q", typeName)
		}
		if err := dec.Decode(generic); err != nil {
			return nil, errors.Wrapf(err, "decoding options for %q", typeName)
		}
	}

	if act, ok := instance.(appender.ActivatableOptions); ok {
		act.ActivateOptions()
	}
	return instance, nil
}
