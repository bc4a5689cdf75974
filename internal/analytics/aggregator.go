// Package analytics computes admin dashboard aggregates from the full
// application set. All functions are pure over their inputs so the
// handler loads once and the math is testable without a database.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gamecraft/internal/database"
)

// TrendEntry is one labelled bucket of a time series. Buckets are
// emitted in chronological order so the JSON array is stable.
type TrendEntry struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BasicStats summarizes the whole dataset plus the recent window.
type BasicStats struct {
	TotalApplications  int    `json:"totalApplications"`
	RecentApplications int    `json:"recentApplications"`
	TotalUsers         int64  `json:"totalUsers"`
	AnalysisPeriod     string `json:"analysisPeriod"`
}

// ExperienceEntry carries the count and acceptance rate for one
// experience level. Every declared level appears, even at zero.
type ExperienceEntry struct {
	Level          database.ExperienceLevel `json:"level"`
	Description    string                   `json:"description"`
	Count          int64                    `json:"count"`
	AcceptanceRate float64                  `json:"acceptanceRate"`
}

// CompanyEntry carries per-company volume and the average days between
// submission and the latest status update, over applications that have
// left SUBMITTED.
type CompanyEntry struct {
	Company           string  `json:"company"`
	Count             int64   `json:"count"`
	Accepted          int64   `json:"accepted"`
	AcceptanceRate    float64 `json:"acceptanceRate"`
	AvgProcessingDays float64 `json:"avgProcessingDays"`
}

// StatusEntry carries the count and share of one lifecycle status.
// Every declared status appears, even at zero.
type StatusEntry struct {
	Status      database.ApplicationStatus `json:"status"`
	Description string                     `json:"description"`
	Count       int64                      `json:"count"`
	Percentage  float64                    `json:"percentage"`
}

// PositionEntry carries per-position volume with an "N:1" competition
// label.
type PositionEntry struct {
	Position    string `json:"position"`
	Count       int64  `json:"count"`
	Competition string `json:"competition"`
}

// Basic counts the dataset against a recent window of the given days.
func Basic(apps []database.Application, totalUsers int64, days int, now time.Time) BasicStats {
	start := now.AddDate(0, 0, -days)
	recent := 0
	for _, a := range apps {
		if a.CreatedAt.After(start) {
			recent++
		}
	}
	return BasicStats{
		TotalApplications:  len(apps),
		RecentApplications: recent,
		TotalUsers:         totalUsers,
		AnalysisPeriod:     fmt.Sprintf("%d일", days),
	}
}

// DailyTrend returns exactly one zero-filled bucket per day of the
// window ending today, labelled "MM-dd".
func DailyTrend(apps []database.Application, days int, now time.Time) []TrendEntry {
	perDay := make(map[string]int64, len(apps))
	for _, a := range apps {
		perDay[a.CreatedAt.Format("01-02")]++
	}

	out := make([]TrendEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		label := day.Format("01-02")
		out = append(out, TrendEntry{Label: label, Count: perDay[label]})
	}
	return out
}

// WeeklyTrend returns twelve 7-day buckets ending this week, labelled
// "MM-dd ~ MM-dd".
func WeeklyTrend(apps []database.Application, now time.Time) []TrendEntry {
	out := make([]TrendEntry, 0, 12)
	for i := 11; i >= 0; i-- {
		start := dateOnly(now.AddDate(0, 0, -7*i))
		end := start.AddDate(0, 0, 6)
		label := start.Format("01-02") + " ~ " + end.Format("01-02")

		var count int64
		for _, a := range apps {
			d := dateOnly(a.CreatedAt)
			if !d.Before(start) && !d.After(end) {
				count++
			}
		}
		out = append(out, TrendEntry{Label: label, Count: count})
	}
	return out
}

// MonthlyTrend returns twelve calendar-month buckets ending this month,
// labelled "yyyy-MM".
func MonthlyTrend(apps []database.Application, now time.Time) []TrendEntry {
	perMonth := make(map[string]int64, len(apps))
	for _, a := range apps {
		perMonth[a.CreatedAt.Format("2006-01")]++
	}

	out := make([]TrendEntry, 0, 12)
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		label := month.Format("2006-01")
		out = append(out, TrendEntry{Label: label, Count: perMonth[label]})
	}
	return out
}

// ExperienceAnalysis reports count and acceptance rate per level, in
// declaration order. Empty levels report a zero rate.
func ExperienceAnalysis(apps []database.Application) []ExperienceEntry {
	out := make([]ExperienceEntry, 0, len(database.ExperienceLevels()))
	for _, level := range database.ExperienceLevels() {
		var total, accepted int64
		for _, a := range apps {
			if a.ExperienceLevel != level {
				continue
			}
			total++
			if a.Status == database.StatusAccepted {
				accepted++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = round2(float64(accepted) / float64(total) * 100)
		}
		out = append(out, ExperienceEntry{
			Level:          level,
			Description:    level.Description(),
			Count:          total,
			AcceptanceRate: rate,
		})
	}
	return out
}

// CompanyAnalysis reports per-company volume, acceptance rate and
// average processing days, ordered by volume descending then name.
func CompanyAnalysis(apps []database.Application) []CompanyEntry {
	type agg struct {
		total, accepted  int64
		processed        int64
		processedDaysSum int64
	}
	byCompany := make(map[string]*agg)
	for _, a := range apps {
		c := byCompany[a.Company]
		if c == nil {
			c = &agg{}
			byCompany[a.Company] = c
		}
		c.total++
		if a.Status == database.StatusAccepted {
			c.accepted++
		}
		if a.Status != database.StatusSubmitted {
			c.processed++
			c.processedDaysSum += int64(a.UpdatedAt.Sub(a.CreatedAt) / (24 * time.Hour))
		}
	}

	out := make([]CompanyEntry, 0, len(byCompany))
	for company, c := range byCompany {
		rate := 0.0
		if c.total > 0 {
			rate = round2(float64(c.accepted) / float64(c.total) * 100)
		}
		avgDays := 0.0
		if c.processed > 0 {
			avgDays = round1(float64(c.processedDaysSum) / float64(c.processed))
		}
		out = append(out, CompanyEntry{
			Company:           company,
			Count:             c.total,
			Accepted:          c.accepted,
			AcceptanceRate:    rate,
			AvgProcessingDays: avgDays,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// StatusAnalysis reports count and percentage per status, in lifecycle
// order. Percentages are all zero on an empty dataset.
func StatusAnalysis(apps []database.Application) []StatusEntry {
	counts := make(map[database.ApplicationStatus]int64, len(apps))
	for _, a := range apps {
		counts[a.Status]++
	}

	total := len(apps)
	out := make([]StatusEntry, 0, len(database.ApplicationStatuses()))
	for _, status := range database.ApplicationStatuses() {
		pct := 0.0
		if total > 0 {
			pct = round2(float64(counts[status]) / float64(total) * 100)
		}
		out = append(out, StatusEntry{
			Status:      status,
			Description: status.Description(),
			Count:       counts[status],
			Percentage:  pct,
		})
	}
	return out
}

// PositionAnalysis reports per-position volume with a competition
// label, ordered by volume descending then name.
func PositionAnalysis(apps []database.Application) []PositionEntry {
	counts := make(map[string]int64, len(apps))
	for _, a := range apps {
		counts[a.Position]++
	}

	out := make([]PositionEntry, 0, len(counts))
	for position, count := range counts {
		out = append(out, PositionEntry{
			Position:    position,
			Count:       count,
			Competition: fmt.Sprintf("%d:1", count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
