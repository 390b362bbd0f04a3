package utilities

import (
	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewIDGenerator returns a function producing snowflake ID strings for the
// given node. The node is created once so IDs stay unique within a
// millisecond. If the node ID is out of range the generator falls back to KSUIDs.
func NewIDGenerator(nodeID int64) func() string {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return NewKSUID
	}
	return func() string {
		return node.Generate().String()
	}
}
