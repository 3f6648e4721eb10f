package hier

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/level"
)

// materializedNode is the materialized variant of a registry slot: a real,
// usable logger in the tree. Its name never changes after creation; its
// level, additivity and parent can change concurrently with dispatch, so
// level and additivity share a small mutex, parent lives in an
// atomic.Value, and appenders have their own Set, rather than one coarse
// per-node lock — a dispatch iterating appenders must not block on an
// unrelated level or parent mutation.
type materializedNode struct {
	name string

	mu         sync.Mutex // guards levelVal/additivity read-modify-write
	levelVal   *level.Level
	additivity bool

	appenders *appender.Set

	parent atomic.Value // holds parentHolder
}

// parentHolder boxes *materializedNode so the zero atomic.Value has a
// consistent concrete type to Load/Store (atomic.Value panics if you store
// two different concrete types across calls, and a bare *materializedNode
// of nil is fine, but we want a distinguishable "never set" state for root).
type parentHolder struct {
	node *materializedNode
}

func newMaterializedNode(name string) *materializedNode {
	n := &materializedNode{
		name:       name,
		additivity: true,
		appenders:  appender.NewSet(),
	}
	n.parent.Store(parentHolder{})
	return n
}

func (n *materializedNode) getParent() *materializedNode {
	h, _ := n.parent.Load().(parentHolder)
	return h.node
}

// swapParent atomically sets a new parent and returns the previous one.
func (n *materializedNode) swapParent(newParent *materializedNode) (old *materializedNode) {
	old = n.getParent()
	n.parent.Store(parentHolder{node: newParent})
	return
}

func (n *materializedNode) getLevel() *level.Level {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.levelVal
}

func (n *materializedNode) setLevel(l *level.Level, isRoot bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if isRoot && l == nil {
		// Root always carries a level; nulling it is ignored. The
		// diagnostic is emitted by the caller (Logger.SetLevel / the
		// configurator), which has access to the hierarchy's sink; this
		// method just enforces the invariant.
		return
	}
	n.levelVal = l
}

func (n *materializedNode) getAdditivity() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.additivity
}

func (n *materializedNode) setAdditivity(a bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.additivity = a
}

// provisionNode is the placeholder variant of a registry slot: it occupies
// a name whose logger has not yet been materialized and collects the
// descendants that registered before it, so they can be re-parented when
// the logger for this name finally appears.
type provisionNode struct {
	mu       sync.Mutex
	children []*materializedNode
}

func newProvisionNode(first *materializedNode) *provisionNode {
	p := &provisionNode{children: make([]*materializedNode, 0, 1)}
	p.addChild(first)
	return p
}

// addChild appends c if not already present (by identity).
func (p *provisionNode) addChild(c *materializedNode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.children {
		if existing == c {
			return
		}
	}
	p.children = append(p.children, c)
}

func (p *provisionNode) snapshotChildren() []*materializedNode {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*materializedNode, len(p.children))
	copy(out, p.children)
	return out
}

// parentName returns the dotted-prefix parent of name, and whether one
// exists (false for a top-level name, which is implicitly parented at
// root).
func parentName(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// ancestorNames yields every dotted-prefix ancestor of name, nearest first,
// e.g. "w.x.y" -> "w.x", "w".
func ancestorNames(name string) []string {
	var out []string
	cur := name
	for {
		parent, ok := parentName(cur)
		if !ok {
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

// hasPrefixName reports whether name is equal to prefix or begins with
// "prefix." — i.e. whether prefix is name or a dotted ancestor of name.
func hasPrefixName(name, prefix string) bool {
	if name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+".")
}
