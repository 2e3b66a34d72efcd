package common

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a time-ordered snowflake ID.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a snowflake ID.
func UUID() string {
	return snowflakeNode.Generate().String()
}
