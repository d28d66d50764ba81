package protocol

import (
	"crypto/md5"
	"fmt"

	"github.com/google/uuid"
)

// Player identifies a player during login.
type Player struct {
	Name string
	UUID uuid.UUID
}

// OfflineUUID returns the UUID an offline-mode server assigns to username:
// a version 3 UUID over "OfflinePlayer:<username>" with no namespace.
func OfflineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))

	sum[6] = sum[6]&0x0f | 0x30
	sum[8] = sum[8]&0x3f | 0x80

	return uuid.UUID(sum)
}

// OfflinePlayer returns the offline-mode identity of username.
func OfflinePlayer(username string) Player {
	return Player{Name: username, UUID: OfflineUUID(username)}
}

// String returns "name (uuid)".
func (p Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.UUID)
}
