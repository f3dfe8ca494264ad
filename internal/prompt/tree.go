package prompt

import "fmt"

// Node is a yes/no question, or a leaf when both children are nil
type Node struct {
	Text string
	Yes  *Node
	No   *Node
}

// IsLeaf reports whether the node ends the walk
func (n *Node) IsLeaf() bool {
	return n.Yes == nil && n.No == nil
}

// Walker walks a decision tree against console answers
type Walker struct {
	console *Console
}

// NewWalker creates a walker reading from console
func NewWalker(console *Console) *Walker {
	return &Walker{console: console}
}

// Walk asks questions from root until it reaches a leaf, prints the leaf and returns it.
// A missing child on the chosen branch ends the walk at the current node.
func (w *Walker) Walk(root *Node) (*Node, error) {
	node := root
	for node != nil && !node.IsLeaf() {
		yes, err := w.console.Confirm(node.Text)
		if err != nil {
			return node, err
		}
		next := node.No
		if yes {
			next = node.Yes
		}
		if next == nil {
			return node, nil
		}
		node = next
	}
	if node != nil {
		w.console.Println(node.Text)
	}
	return node, nil
}

// Section is one event offered by the results tree
type Section struct {
	Label string
	Text  string
}

// EventTree chains one question per section. Yes shows the section, no moves to the next event.
func EventTree(athlete string, sections []Section) *Node {
	node := &Node{Text: "Those are all of the races we are tracking"}
	for i := len(sections) - 1; i >= 0; i-- {
		node = &Node{
			Text: fmt.Sprintf("Would you like to see results of %s's %s races?", athlete, sections[i].Label),
			Yes:  &Node{Text: sections[i].Text},
			No:   node,
		}
	}
	return node
}
