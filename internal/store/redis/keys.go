package redis

import (
	"fmt"

	"github.com/smeargame/smearcli/internal/model"
)

// Key prefix for all client state
const keyPrefix = "smear"

// sessionKey returns the Redis key for the signed-in session
func sessionKey() string {
	return fmt.Sprintf("%s:session", keyPrefix)
}

// snapshotKey returns the Redis key for a cached game snapshot
func snapshotKey(id model.GameID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}
