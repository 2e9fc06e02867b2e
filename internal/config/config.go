package config

import (
	"os"
	"strconv"
)

// Config carries the knobs the server reads from the environment. Missing
// or malformed values fall back to the defaults the game was designed for.
type Config struct {
	Port         string
	RoundSeconds int
	RoomCapacity int
}

func Load() Config {
	return Config{
		Port:         getString("PORT", "8080"),
		RoundSeconds: getInt("ROUND_SECONDS", 60),
		RoomCapacity: getInt("ROOM_CAPACITY", 8),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
