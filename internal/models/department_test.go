package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildLevel(t *testing.T) {
	assert.Equal(t, 0, ChildLevel(nil))

	parent := &Department{Level: 2}
	assert.Equal(t, 3, ChildLevel(parent))
}

func TestChildPath(t *testing.T) {
	assert.Equal(t, "d-root", ChildPath(nil, "d-root"))

	parent := &Department{DepartmentID: "d-root", Path: "d-root"}
	assert.Equal(t, "d-root/d-sub", ChildPath(parent, "d-sub"))

	grandparent := &Department{Path: "d-root/d-sub"}
	assert.Equal(t, "d-root/d-sub/d-leaf", ChildPath(grandparent, "d-leaf"))
}

func TestDepartmentIsRoot(t *testing.T) {
	root := &Department{}
	assert.True(t, root.IsRoot())

	parentID := uint(1)
	child := &Department{ParentID: &parentID}
	assert.False(t, child.IsRoot())
}

func TestDepartmentIsDescendantOf(t *testing.T) {
	root := &Department{DepartmentID: "d-root", Path: "d-root"}
	sub := &Department{DepartmentID: "d-sub", Path: "d-root/d-sub"}
	leaf := &Department{DepartmentID: "d-leaf", Path: "d-root/d-sub/d-leaf"}
	other := &Department{DepartmentID: "d-other", Path: "d-other"}

	assert.True(t, sub.IsDescendantOf(root))
	assert.True(t, leaf.IsDescendantOf(root))
	assert.True(t, leaf.IsDescendantOf(sub))

	assert.False(t, root.IsDescendantOf(sub))
	assert.False(t, root.IsDescendantOf(root))
	assert.False(t, other.IsDescendantOf(root))

	// 前缀相似但不是路径分段前缀
	similar := &Department{DepartmentID: "d-rootx", Path: "d-rootx"}
	assert.False(t, similar.IsDescendantOf(root))
}
