// Package naming turns protocol document names (snake_case packet names,
// camelCase field names, namespaced switch values such as "minecraft:dust")
// into exported Go identifiers.
//
// Names are split into tokens on separators and camelCase boundaries, each
// token is title-cased, and well-known initialisms are upper-cased:
//
//	"set_protocol"   -> "SetProtocol"
//	"entityId"       -> "EntityID"
//	"playerUUID"     -> "PlayerUUID"
//	"minecraft:dust" -> "MinecraftDust"
//
// Two distinct names that produce the same identifier within one scope are a
// collision; Scope reports it.
package naming
