// Package hier implements the core of a hierarchical logging framework: a
// named-tree registry of loggers (C2), the repository façade that owns the
// tree (C4), effective-level resolution and additivity-governed dispatch
// (C5), and the LoggingEvent construction contract (C7). The Appender
// capability and XML-driven configuration wiring live in sibling packages
// (appender, xmlconfig); no concrete appenders or layouts are part of this
// module.
package hier

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/cobaltlog/hier/level"
)

// LoggerFactory constructs the materialized node backing a new Logger.
// Kept narrow so tests can inject counting/mock loggers;
// DefaultLoggerFactory is used when none is supplied.
type LoggerFactory interface {
	CreateLogger(h *Hierarchy, name string) *Logger
}

type defaultLoggerFactory struct{}

func (defaultLoggerFactory) CreateLogger(h *Hierarchy, name string) *Logger {
	n := newMaterializedNode(name)
	return &Logger{node: n, hier: h}
}

// DefaultLoggerFactory is the LoggerFactory used by NewHierarchy when none
// is supplied.
var DefaultLoggerFactory LoggerFactory = defaultLoggerFactory{}

// ConfigMessage is one accumulated diagnostic from a configuration run.
type ConfigMessage struct {
	Level  diagnostic.Level
	Logger string
	Err    error
}

// Hierarchy is the repository façade (C4): it owns the named tree, the
// level vocabulary, the global disable threshold, and lifecycle operations
// (shutdown, reset, reconfigure). One Hierarchy is created per independent
// logging domain; most applications need exactly one.
type Hierarchy struct {
	name string

	mu       sync.Mutex // serializes registry inserts/replacements and root re-linking
	registry map[string]interface{}
	root     *materializedNode

	levels *level.Map

	threshold atomic.Value // level.Level

	configured int32 // atomic bool, 0/1
	noAppWarn  int32 // atomic bool, 0/1

	propsMu sync.RWMutex
	props   map[string]string

	sink diagnostic.Sink

	hooksMu          sync.Mutex
	loggerCreated    []func(*Logger)
	configChanged    []func()
	configMessagesMu sync.Mutex
	configMessages   []ConfigMessage

	domain string

	renderersMu sync.RWMutex
	renderers   map[string]string // renderedClass -> renderingClass

	appendersMu    sync.Mutex
	namedAppenders map[string]appender.Appender // declared appender name -> built instance
}

// NewHierarchy constructs a Hierarchy with the standard level vocabulary,
// an unnamed root logger at DEBUG, threshold ALL, and configured=false:
// nothing is emitted until a configurator runs at least once. A nil sink
// is replaced with diagnostic.Nop().
func NewHierarchy(name string, sink diagnostic.Sink) *Hierarchy {
	if sink == nil {
		sink = diagnostic.Nop()
	}
	h := &Hierarchy{
		name:           name,
		registry:       make(map[string]interface{}),
		levels:         level.NewMap(),
		sink:           sink,
		props:          make(map[string]string),
		domain:         processDomain(),
		renderers:      make(map[string]string),
		namedAppenders: make(map[string]appender.Appender),
	}
	h.threshold.Store(level.ALL)
	root := newMaterializedNode("")
	rootLevel := level.DEBUG
	root.levelVal = &rootLevel
	h.root = root
	return h
}

func processDomain() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return ""
}

// Name returns the repository's own diagnostic name (not part of the
// logger-name namespace).
func (h *Hierarchy) Name() string { return h.name }

// Levels returns the hierarchy's LevelMap.
func (h *Hierarchy) Levels() *level.Map { return h.levels }

// Root returns the root Logger.
func (h *Hierarchy) Root() *Logger {
	return &Logger{node: h.root, hier: h}
}

// Threshold returns the current global disable threshold.
func (h *Hierarchy) Threshold() level.Level {
	return h.threshold.Load().(level.Level)
}

// SetThreshold sets the global disable threshold.
func (h *Hierarchy) SetThreshold(l level.Level) {
	h.threshold.Store(l)
}

// Configured reports whether a configurator has completed at least one run.
func (h *Hierarchy) Configured() bool {
	return atomic.LoadInt32(&h.configured) != 0
}

// setConfigured is called by a configurator once its run completes.
// ResetConfiguration deliberately leaves the flag alone: logging stays
// gated until an actual configuration has been applied.
func (h *Hierarchy) setConfigured(v bool) {
	var i int32
	if v {
		i = 1
	}
	atomic.StoreInt32(&h.configured, i)
}

// IsDisabled reports whether l is globally suppressed: true for every
// level until the hierarchy has been configured at least once; thereafter
// true iff the threshold exceeds the level.
func (h *Hierarchy) IsDisabled(l level.Level) bool {
	if !h.Configured() {
		return true
	}
	return h.Threshold().Value > l.Value
}

// Sink returns the hierarchy's DiagnosticSink.
func (h *Hierarchy) Sink() diagnostic.Sink { return h.sink }

// SetProperty sets a named repository property, consulted by
// `<param>`/generic-element configuration and snapshotted into every
// LoggingEvent's Properties().
func (h *Hierarchy) SetProperty(key, value string) {
	h.propsMu.Lock()
	defer h.propsMu.Unlock()
	h.props[key] = value
}

// Property returns a repository property and whether it was set.
func (h *Hierarchy) Property(key string) (string, bool) {
	h.propsMu.RLock()
	defer h.propsMu.RUnlock()
	v, ok := h.props[key]
	return v, ok
}

func (h *Hierarchy) propertiesSnapshot() map[string]string {
	h.propsMu.RLock()
	defer h.propsMu.RUnlock()
	out := make(map[string]string, len(h.props))
	for k, v := range h.props {
		out[k] = v
	}
	return out
}

// BindRenderer records that objects of renderedClass should be rendered
// with renderingClass, as declared by a `<renderer>` element. The core
// itself never invokes a renderer; this is bookkeeping an appender/layout
// can consult.
func (h *Hierarchy) BindRenderer(renderedClass, renderingClass string) {
	h.renderersMu.Lock()
	defer h.renderersMu.Unlock()
	h.renderers[renderedClass] = renderingClass
}

// Renderer looks up the renderingClass bound to renderedClass, if any.
func (h *Hierarchy) Renderer(renderedClass string) (string, bool) {
	h.renderersMu.RLock()
	defer h.renderersMu.RUnlock()
	r, ok := h.renderers[renderedClass]
	return r, ok
}

// AppenderByName returns the Appender previously built under the declared
// `<appender name="...">`, if any. A configurator consults this before
// building a new instance so that re-applying the same document in Merge
// mode preserves appender identity per name instead of silently replacing
// a live appender with an identical-looking twin.
func (h *Hierarchy) AppenderByName(name string) (appender.Appender, bool) {
	h.appendersMu.Lock()
	defer h.appendersMu.Unlock()
	a, ok := h.namedAppenders[name]
	return a, ok
}

// RegisterAppenderByName records a built Appender under its declared name so
// a later Configure call can find and reuse it via AppenderByName.
func (h *Hierarchy) RegisterAppenderByName(name string, a appender.Appender) {
	h.appendersMu.Lock()
	defer h.appendersMu.Unlock()
	h.namedAppenders[name] = a
}

// clearNamedAppenders empties the by-name appender cache. Called by
// ResetConfiguration: the appenders it is about to run through Shutdown()
// must not be handed back out as "the same instance" by a subsequent
// Configure call.
func (h *Hierarchy) clearNamedAppenders() {
	h.appendersMu.Lock()
	defer h.appendersMu.Unlock()
	h.namedAppenders = make(map[string]appender.Appender)
}

// OnLoggerCreated registers a hook fired (synchronously, under no lock)
// whenever GetLogger materializes a brand-new node.
func (h *Hierarchy) OnLoggerCreated(fn func(*Logger)) {
	h.hooksMu.Lock()
	defer h.hooksMu.Unlock()
	h.loggerCreated = append(h.loggerCreated, fn)
}

// OnConfigurationChanged registers a hook fired after a configurator run
// completes.
func (h *Hierarchy) OnConfigurationChanged(fn func()) {
	h.hooksMu.Lock()
	defer h.hooksMu.Unlock()
	h.configChanged = append(h.configChanged, fn)
}

func (h *Hierarchy) fireLoggerCreated(l *Logger) {
	h.hooksMu.Lock()
	hooks := make([]func(*Logger), len(h.loggerCreated))
	copy(hooks, h.loggerCreated)
	h.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(l)
	}
}

// FireConfigurationChanged notifies registered hooks that configuration has
// changed. Exported so package xmlconfig (or any other configurator) can
// call it without needing access to Hierarchy internals.
func (h *Hierarchy) FireConfigurationChanged() {
	h.hooksMu.Lock()
	hooks := make([]func(), len(h.configChanged))
	copy(hooks, h.configChanged)
	h.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// AddConfigMessage records one per-element diagnostic from a configuration
// run. Exported for use by package xmlconfig.
func (h *Hierarchy) AddConfigMessage(msg ConfigMessage) {
	h.configMessagesMu.Lock()
	defer h.configMessagesMu.Unlock()
	h.configMessages = append(h.configMessages, msg)
}

// ConfigurationMessages returns every diagnostic accumulated by
// configuration runs so far.
func (h *Hierarchy) ConfigurationMessages() []ConfigMessage {
	h.configMessagesMu.Lock()
	defer h.configMessagesMu.Unlock()
	out := make([]ConfigMessage, len(h.configMessages))
	copy(out, h.configMessages)
	return out
}

// ClearConfigurationMessages empties the accumulated diagnostics list.
// Nothing in this module calls it; Overwrite-mode reconfiguration keeps
// the messages of earlier runs.
func (h *Hierarchy) ClearConfigurationMessages() {
	h.configMessagesMu.Lock()
	defer h.configMessagesMu.Unlock()
	h.configMessages = nil
}

// MarkConfigured sets the Configured flag and fires the
// configuration-changed hook. Exported for package xmlconfig, the primary
// caller of the configuration lifecycle.
func (h *Hierarchy) MarkConfigured() {
	h.setConfigured(true)
	h.FireConfigurationChanged()
}

// GetLogger returns the Logger named name, creating it with factory if it
// does not exist yet. A provision placeholder at that name is materialized
// in place, adopting the descendants it had collected.
func (h *Hierarchy) GetLogger(name string, factory LoggerFactory) *Logger {
	if factory == nil {
		factory = DefaultLoggerFactory
	}

	h.mu.Lock()

	existing, found := h.registry[name]
	if !found {
		l := factory.CreateLogger(h, name)
		h.registry[name] = l.node
		h.updateParents(l.node)
		h.mu.Unlock()
		h.fireLoggerCreated(l)
		return l
	}

	if materialized, ok := existing.(*materializedNode); ok {
		h.mu.Unlock()
		return &Logger{node: materialized, hier: h}
	}

	// existing is a *provisionNode: materialize it in place.
	prov := existing.(*provisionNode)
	l := factory.CreateLogger(h, name)
	h.registry[name] = l.node
	h.updateChildren(prov, l.node)
	h.updateParents(l.node)
	h.mu.Unlock()
	h.fireLoggerCreated(l)
	return l
}

// updateParents walks node's dotted-prefix ancestors, nearest first,
// installing provision placeholders at empty slots and linking node to the
// nearest materialized ancestor (root if none). Must be called with h.mu
// held.
func (h *Hierarchy) updateParents(node *materializedNode) {
	var parent *materializedNode
	for _, ancestor := range ancestorNames(node.name) {
		slot, ok := h.registry[ancestor]
		if !ok {
			h.registry[ancestor] = newProvisionNode(node)
			continue
		}
		switch s := slot.(type) {
		case *provisionNode:
			s.addChild(node)
		case *materializedNode:
			parent = s
		}
		if parent != nil {
			break
		}
	}
	if parent == nil {
		parent = h.root
	}
	node.swapParent(parent)
}

// updateChildren re-parents each of prov's collected children onto node,
// unless a closer ancestor has already been installed between them. Must
// be called with h.mu held.
func (h *Hierarchy) updateChildren(prov *provisionNode, node *materializedNode) {
	for _, c := range prov.snapshotChildren() {
		cp := c.getParent()
		if cp == nil || !hasPrefixName(cp.name, node.name) {
			grandParent := c.swapParent(node)
			node.swapParent(grandParent)
		}
	}
}

// Shutdown closes nested-attachable appenders on every node first, then
// removes all appenders everywhere, then emits a shutdown diagnostic. Safe
// to call multiple times.
func (h *Hierarchy) Shutdown() {
	nodes := h.allMaterializedNodes()

	for _, n := range nodes {
		n.appenders.CloseNested()
	}
	for _, n := range nodes {
		n.appenders.CloseAll()
	}
	h.sink.Log(diagnostic.Info, "hierarchy shutdown", diagnostic.Fields{"hierarchy": h.name})
}

// ResetConfiguration returns the hierarchy to its pre-configuration state:
// root level back to DEBUG, threshold to ALL, Shutdown(), then every
// non-root node's level cleared and additivity restored to true. Topology
// (the tree shape) is preserved; Configured is left untouched.
func (h *Hierarchy) ResetConfiguration() {
	rootLevel := h.levels.LookupWithDefault(level.DEBUG)
	h.root.setLevel(&rootLevel, true)
	h.SetThreshold(level.ALL)
	h.clearNamedAppenders()
	h.Shutdown()

	for _, n := range h.allMaterializedNodes() {
		if n == h.root {
			continue
		}
		n.setLevel(nil, false)
		n.setAdditivity(true)
	}
}

// allMaterializedNodes returns every Materialized node currently in the
// registry, plus root.
func (h *Hierarchy) allMaterializedNodes() []*materializedNode {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := []*materializedNode{h.root}
	for _, v := range h.registry {
		if n, ok := v.(*materializedNode); ok {
			out = append(out, n)
		}
	}
	return out
}

// Loggers returns every currently-materialized, named Logger (root is not
// included; use Root()).
func (h *Hierarchy) Loggers() []*Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*Logger
	for _, v := range h.registry {
		if n, ok := v.(*materializedNode); ok {
			out = append(out, &Logger{node: n, hier: h})
		}
	}
	return out
}

// Exists reports whether name is already a Materialized node (not merely a
// Provision placeholder).
func (h *Hierarchy) Exists(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.registry[name]
	if !ok {
		return false
	}
	_, ok = v.(*materializedNode)
	return ok
}
