package idutil

import (
	"strconv"

	"github.com/bwmarrin/snowflake"
)

type Generator interface {
	Generate() snowflake.ID
}

// NewGenerator returns a snowflake generator for the given node. Every
// process writing to the same table needs its own node number.
func NewGenerator(node int64) (Generator, error) {
	return snowflake.NewNode(node)
}

// Time returns the creation time of a snowflake id in unix milliseconds.
func Time(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ParseInt64(n).Time(), nil
}
