package model

import "github.com/harshitSingh1/SentinelShe/internal/scoring"

type LeaderboardEntry struct {
	UserID   string        `json:"userId"`
	UserName *string       `json:"userName"`
	Rank     int           `json:"rank"`
	Score    int           `json:"score"`
	Level    scoring.Level `json:"level"`
}
