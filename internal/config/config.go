package config

import (
	"fmt"
	"os"
)

// Config collects everything the service reads from the environment.
// Components receive the values they need at construction instead of
// touching os.Getenv themselves.
type Config struct {
	Port        string
	DatabaseDSN string
	ServerURL   string

	LeetCodeBaseURL   string
	CodeforcesBaseURL string
	CodeChefBaseURL   string

	YouTubeAPIKey string
	// Playlists maps a platform name to the YouTube playlist that carries
	// its solution videos. An empty value disables matching for that platform.
	Playlists map[string]string

	BotToken string
}

func Load() *Config {
	cfg := &Config{
		Port:              getenv("PORT", "5000"),
		DatabaseDSN:       getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=contests port=5432 sslmode=disable"),
		LeetCodeBaseURL:   getenv("LEETCODE_BASE_URL", "https://leetcode.com"),
		CodeforcesBaseURL: getenv("CODEFORCES_BASE_URL", "https://codeforces.com"),
		CodeChefBaseURL:   getenv("CODECHEF_BASE_URL", "https://www.codechef.com"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		Playlists: map[string]string{
			"LeetCode":   getenv("YOUTUBE_PLAYLIST_LEETCODE", "PLcXpkI9A-RZI6FhydNz3JBt_-p_i25Cbr"),
			"Codeforces": getenv("YOUTUBE_PLAYLIST_CODEFORCES", "PLcXpkI9A-RZLUfBSNp-YQBCOezZKbDSgB"),
			"CodeChef":   getenv("YOUTUBE_PLAYLIST_CODECHEF", "PLcXpkI9A-RZIZ6lsE0KCcLWeKNoG45fYr"),
		},
		BotToken: os.Getenv("BOT_TOKEN"),
	}
	cfg.ServerURL = getenv("SERVER_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
