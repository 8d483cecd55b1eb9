package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a game session
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s looks like an id produced by GenerateGameID
func IsGameID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
