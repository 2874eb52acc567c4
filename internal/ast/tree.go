package ast

import "github.com/HicaroD/sketchpp/internal/lexer/token"

// Index of a node inside its Tree. The zero value means "no node".
type NodeID int

const NoNode NodeID = 0

type Node struct {
	Kind NodeKind
	Text string
	// Source token the node was built from, nil for synthesized nodes
	Tok *token.Token
	// Copy of a shared declaration specifier. It has no source text of its
	// own.
	Dup bool

	first, next, last NodeID
}

// Arena of nodes linked through first-child/next-sibling indexes.
type Tree struct {
	nodes []Node

	// Mutations of nodes older than the innermost open checkpoint, kept so
	// Restore can undo them.
	journal []undo
	open    []Checkpoint
}

type undo struct {
	id  NodeID
	old Node
}

type Checkpoint struct {
	size    int
	journal int
}

func NewTree() *Tree {
	// slot 0 is NoNode
	return &Tree{nodes: make([]Node, 1, 256)}
}

func (tree *Tree) Len() int { return len(tree.nodes) - 1 }

// The returned pointer is only valid until the next node is created.
func (tree *Tree) Get(id NodeID) *Node {
	if id <= NoNode || int(id) >= len(tree.nodes) {
		return nil
	}
	return &tree.nodes[id]
}

func (tree *Tree) Kind(id NodeID) NodeKind {
	if n := tree.Get(id); n != nil {
		return n.Kind
	}
	return KIND_INVALID
}

func (tree *Tree) Text(id NodeID) string {
	if n := tree.Get(id); n != nil {
		return n.Text
	}
	return ""
}

func (tree *Tree) Tok(id NodeID) *token.Token {
	if n := tree.Get(id); n != nil {
		return n.Tok
	}
	return nil
}

func (tree *Tree) FirstChild(id NodeID) NodeID {
	if n := tree.Get(id); n != nil {
		return n.first
	}
	return NoNode
}

func (tree *Tree) NextSibling(id NodeID) NodeID {
	if n := tree.Get(id); n != nil {
		return n.next
	}
	return NoNode
}

func (tree *Tree) Children(id NodeID) []NodeID {
	var children []NodeID
	for child := tree.FirstChild(id); child != NoNode; child = tree.NextSibling(child) {
		children = append(children, child)
	}
	return children
}

// Returns the i-th child or NoNode
func (tree *Tree) Child(id NodeID, i int) NodeID {
	child := tree.FirstChild(id)
	for ; child != NoNode && i > 0; i-- {
		child = tree.NextSibling(child)
	}
	return child
}

func (tree *Tree) ChildOfKind(id NodeID, kind NodeKind) NodeID {
	for child := tree.FirstChild(id); child != NoNode; child = tree.NextSibling(child) {
		if tree.Kind(child) == kind {
			return child
		}
	}
	return NoNode
}

// Factory

func (tree *Tree) New() NodeID {
	return tree.push(Node{})
}

func (tree *Tree) Make(kind NodeKind, text string) NodeID {
	return tree.push(Node{Kind: kind, Text: text})
}

func (tree *Tree) FromToken(kind NodeKind, tok *token.Token) NodeID {
	return tree.push(Node{Kind: kind, Text: string(tok.Lexeme), Tok: tok})
}

// Shallow copy: kind and text only, no children.
func (tree *Tree) From(id NodeID) NodeID {
	src := tree.Get(id)
	if src == nil {
		return NoNode
	}
	return tree.push(Node{Kind: src.Kind, Text: src.Text, Tok: src.Tok, Dup: true})
}

// Deep copy of the subtree rooted at id. The copy is detached: it has no
// next sibling.
func (tree *Tree) Dup(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	copied := tree.From(id)
	for child := tree.FirstChild(id); child != NoNode; child = tree.NextSibling(child) {
		tree.AddChild(copied, tree.Dup(child))
	}
	return copied
}

// Deep copy of a sibling chain, returns the first node of the copy.
func (tree *Tree) DupList(first NodeID) NodeID {
	var head, prev NodeID
	for sibling := first; sibling != NoNode; sibling = tree.NextSibling(sibling) {
		copied := tree.Dup(sibling)
		if head == NoNode {
			head = copied
		} else {
			tree.setNext(prev, copied)
		}
		prev = copied
	}
	return head
}

// O(1) append
func (tree *Tree) AddChild(parent, child NodeID) {
	if parent == NoNode || child == NoNode {
		return
	}
	p := tree.Get(parent)
	if p.first == NoNode {
		tree.save(parent)
		p = tree.Get(parent)
		p.first = child
		p.last = child
		return
	}
	last := p.last
	tree.setNext(last, child)
	tree.save(parent)
	tree.Get(parent).last = child
}

func (tree *Tree) SetKind(id NodeID, kind NodeKind) {
	if tree.Get(id) == nil {
		return
	}
	tree.save(id)
	tree.Get(id).Kind = kind
}

func (tree *Tree) SetText(id NodeID, text string) {
	if tree.Get(id) == nil {
		return
	}
	tree.save(id)
	tree.Get(id).Text = text
}

// Checkpoints

func (tree *Tree) Mark() Checkpoint {
	cp := Checkpoint{size: len(tree.nodes), journal: len(tree.journal)}
	tree.open = append(tree.open, cp)
	return cp
}

// Drops every node created since cp and undoes every link change made to
// older nodes. Checkpoints must be restored in LIFO order.
func (tree *Tree) Restore(cp Checkpoint) {
	for i := len(tree.journal) - 1; i >= cp.journal; i-- {
		entry := tree.journal[i]
		if int(entry.id) < cp.size {
			tree.nodes[entry.id] = entry.old
		}
	}
	tree.journal = tree.journal[:cp.journal]
	tree.nodes = tree.nodes[:cp.size]
	if n := len(tree.open); n > 0 {
		tree.open = tree.open[:n-1]
	}
}

func (tree *Tree) push(node Node) NodeID {
	tree.nodes = append(tree.nodes, node)
	return NodeID(len(tree.nodes) - 1)
}

func (tree *Tree) setNext(id, next NodeID) {
	tree.save(id)
	tree.Get(id).next = next
}

func (tree *Tree) save(id NodeID) {
	if len(tree.open) == 0 {
		return
	}
	innermost := tree.open[len(tree.open)-1]
	if int(id) >= innermost.size {
		return
	}
	tree.journal = append(tree.journal, undo{id: id, old: tree.nodes[id]})
}
