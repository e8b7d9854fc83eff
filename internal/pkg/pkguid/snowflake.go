package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// epochMillis is 2026-01-01T00:00:00Z. IDs stay positive for ~69 years after.
const epochMillis int64 = 1767225600000

// MaxNodeID is the largest node number a Snowflake generator accepts.
const MaxNodeID int64 = 1<<10 - 1

//nolint:gochecknoglobals // the library epoch is process wide
var setEpoch sync.Once

// Snowflake generates time-ordered int64 IDs, used for bulk job IDs.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	err := binary.Read(rand.Reader, binary.BigEndian, &nodeID)
	if err != nil {
		return 0, err
	}

	return nodeID & MaxNodeID, nil
}

// NewSnowflake constructs a Snowflake generator with a random node ID.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := generateRandomNodeID()
	if err != nil {
		return nil, err
	}

	return NewSnowflakeNode(nodeID)
}

// NewSnowflakeNode constructs a Snowflake generator for a fixed node, so that
// replicas can be given distinct IDs. node must be within 0..MaxNodeID.
func NewSnowflakeNode(node int64) (*Snowflake, error) {
	if node < 0 || node > MaxNodeID {
		return nil, fmt.Errorf("snowflake node %d out of range 0..%d", node, MaxNodeID)
	}

	setEpoch.Do(func() {
		snowflake.Epoch = epochMillis
	})

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
