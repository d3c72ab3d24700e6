package dom

import "fmt"

// MutationOp is the type of applied tree edit.
type MutationOp uint8

const (
	MutSetText     MutationOp = 0x01 // Update text content
	MutSetAttr     MutationOp = 0x02 // Set/update attribute
	MutRemoveAttr  MutationOp = 0x03 // Remove attribute
	MutSetStyle    MutationOp = 0x04 // Set/update one style sub-property
	MutRemoveStyle MutationOp = 0x05 // Remove one style sub-property
	MutInsertNode  MutationOp = 0x06 // Insert new node
	MutRemoveNode  MutationOp = 0x07 // Remove node
	MutMoveNode    MutationOp = 0x08 // Move node to new position
	MutReplaceNode MutationOp = 0x09 // Replace node entirely
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutSetText:
		return "set-text"
	case MutSetAttr:
		return "set-attr"
	case MutRemoveAttr:
		return "remove-attr"
	case MutSetStyle:
		return "set-style"
	case MutRemoveStyle:
		return "remove-style"
	case MutInsertNode:
		return "insert-node"
	case MutRemoveNode:
		return "remove-node"
	case MutMoveNode:
		return "move-node"
	case MutReplaceNode:
		return "replace-node"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the op as its string name so journal consumers
// (the live client among them) never depend on numeric values.
func (op MutationOp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", op.String())), nil
}

// Mutation records a single applied tree edit.
type Mutation struct {
	Op       MutationOp `json:"op"`
	NodeID   string     `json:"node,omitempty"`   // Target node
	ParentID string     `json:"parent,omitempty"` // Parent for insert/move
	Key      string     `json:"key,omitempty"`    // Attribute or style key
	Value    string     `json:"value,omitempty"`  // New value
	Index    int        `json:"index,omitempty"`  // Position for insert/move
	Node     *Node      `json:"tree,omitempty"`   // Inserted/replacement subtree
}
