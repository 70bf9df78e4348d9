package redis

import (
	"fmt"

	"github.com/mcoot/wordtiles/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordtiles"

// gameKey returns the Redis key for a game and its players
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// movesKey returns the Redis key for the LIST of a game's moves
func movesKey(id model.GameID) string {
	return fmt.Sprintf("%s:moves:%s", keyPrefix, id)
}

// expiryIndexKey returns the Redis key for the ZSET of active games scored by turn deadline
func expiryIndexKey() string {
	return fmt.Sprintf("%s:idx:turn_expiry", keyPrefix)
}

// userGamesIndexKey returns the Redis key for the ZSET of a user's games scored by creation time
func userGamesIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:user_games:%s", keyPrefix, userID)
}

// dictionaryKey returns the Redis key for a language's word set
func dictionaryKey(language string) string {
	return fmt.Sprintf("%s:dictionary:%s", keyPrefix, language)
}

// statsKey returns the Redis key for a user's stats
func statsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, userID)
}
