package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

const defaultNodeID = 1

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init sets the Snowflake node used for relay request ids. Calling it again
// replaces the node, so each process should call it once at startup.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// New returns a time-ordered int64 id. If Init was never called, node 1 is used.
func New() int64 {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		node, _ = snowflake.NewNode(defaultNodeID)
	}
	return node.Generate().Int64()
}
