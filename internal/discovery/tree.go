package discovery

import (
	"sort"
	"strings"
)

type treeNode struct {
	children map[string]*treeNode
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func (n *treeNode) isDir() bool {
	return len(n.children) > 0
}

// only returns the single child of a node with exactly one child.
func (n *treeNode) only() (string, *treeNode) {
	for name, child := range n.children {
		return name, child
	}
	return "", nil
}

// RenderTree draws slash-separated paths as a tree rooted at ".". Directories sort
// before files, then names case-insensitively. With collapseSingleDirs a chain of
// directories that each hold one subdirectory is shown on one line (java/com/example).
func RenderTree(paths []string, collapseSingleDirs bool) string {
	root := newTreeNode()
	for _, p := range paths {
		node := root
		for _, part := range strings.Split(p, "/") {
			if part == "" || part == "." {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = newTreeNode()
				node.children[part] = child
			}
			node = child
		}
	}

	lines := []string{"."}
	lines = renderNode(root, "", collapseSingleDirs, lines)
	return strings.Join(lines, "\n")
}

func renderNode(node *treeNode, prefix string, collapse bool, lines []string) []string {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := node.children[names[i]], node.children[names[j]]
		if a.isDir() != b.isDir() {
			return a.isDir()
		}
		la, lb := strings.ToLower(names[i]), strings.ToLower(names[j])
		if la != lb {
			return la < lb
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		last := i == len(names)-1
		connector, extension := "├─ ", "│  "
		if last {
			connector, extension = "└─ ", "   "
		}

		display := name
		current := node.children[name]
		if collapse {
			for len(current.children) == 1 {
				childName, child := current.only()
				if !child.isDir() {
					break
				}
				display += "/" + childName
				current = child
			}
		}

		lines = append(lines, prefix+connector+display)
		if current.isDir() {
			lines = renderNode(current, prefix+extension, collapse, lines)
		}
	}
	return lines
}
