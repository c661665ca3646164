package dto

import "github.com/GlebRadaev/elevatex/internal/domain"

type LeaderboardEntryDTO struct {
	Rank           int    `json:"rank" example:"1"`
	UserID         int    `json:"user_id" example:"17"`
	Name           string `json:"name" example:"Ada Obi"`
	TotalEarned    string `json:"total_earned" example:"5400.00"`
	ReferralsCount int    `json:"referrals_count" example:"12"`
}

type LeaderboardResponseDTO struct {
	Month   int                   `json:"month" example:"3"`
	Year    int                   `json:"year" example:"2026"`
	Entries []LeaderboardEntryDTO `json:"entries"`
}

func ToLeaderboardDTO(month, year int, entries []domain.LeaderboardEntry) LeaderboardResponseDTO {
	out := make([]LeaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntryDTO{
			Rank:           e.Rank,
			UserID:         e.UserID,
			Name:           e.UserName,
			TotalEarned:    e.TotalEarned.StringFixed(2),
			ReferralsCount: e.ReferralsCount,
		})
	}
	return LeaderboardResponseDTO{Month: month, Year: year, Entries: out}
}

type BadgesResponseDTO struct {
	Badges    []string `json:"badges"`
	Level     int      `json:"level" example:"2"`
	LevelName string   `json:"level_name" example:"Growth"`
	Rank      int      `json:"rank,omitempty" example:"4"`
}

func ToBadgesDTO(a *domain.Achievements) BadgesResponseDTO {
	return BadgesResponseDTO{
		Badges:    a.Badges,
		Level:     a.Level,
		LevelName: a.LevelName,
		Rank:      a.Rank,
	}
}
