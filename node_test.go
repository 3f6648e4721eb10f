package hier

import (
	"testing"

	"github.com/cobaltlog/hier/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestorNamesNearestFirst(t *testing.T) {
	assert.Equal(t, []string{"a.b", "a"}, ancestorNames("a.b.c"))
	assert.Empty(t, ancestorNames("a"))
	assert.Empty(t, ancestorNames(""))
}

func TestParentNameSplitsOnLastDot(t *testing.T) {
	p, ok := parentName("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "a.b", p)

	_, ok = parentName("a")
	assert.False(t, ok)
}

func TestHasPrefixNameRequiresDotBoundary(t *testing.T) {
	assert.True(t, hasPrefixName("a.bc", "a.bc"))
	assert.True(t, hasPrefixName("a.bc.d", "a.bc"))
	assert.False(t, hasPrefixName("a.bcd", "a.bc"))
	assert.False(t, hasPrefixName("x.y", "a.bc"))
}

func TestProvisionNodeAddChildDedupesByIdentity(t *testing.T) {
	first := newMaterializedNode("a.b.c")
	prov := newProvisionNode(first)
	prov.addChild(first)
	assert.Len(t, prov.snapshotChildren(), 1)

	second := newMaterializedNode("a.b.d")
	prov.addChild(second)
	assert.Len(t, prov.snapshotChildren(), 2)
}

func TestMaterializedNodeSwapParentReturnsOld(t *testing.T) {
	n := newMaterializedNode("a.b")
	root := newMaterializedNode("")
	old := n.swapParent(root)
	assert.Nil(t, old)
	assert.Same(t, root, n.getParent())

	other := newMaterializedNode("x")
	old2 := n.swapParent(other)
	assert.Same(t, root, old2)
}

func TestMaterializedNodeSetLevelIgnoresNilOnRoot(t *testing.T) {
	root := newMaterializedNode("")
	lvl := level.DEBUG
	root.setLevel(&lvl, true)
	root.setLevel(nil, true)
	assert.NotNil(t, root.getLevel())
}
