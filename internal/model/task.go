package model

import "time"

const MaxTaskTextLength = 500

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyStats is the per-day counter block shown next to the timer.
type DailyStats struct {
	Date                string `json:"date"`
	PomodoroCount       int    `json:"pomodoroCount"`
	CompletedTasksCount int    `json:"completedTasksCount"`
	TotalMinutes        int    `json:"totalMinutes"`
}

// TimerStats summarizes a user's session history. Durations are in seconds.
type TimerStats struct {
	TotalFocusTime       int `json:"totalFocusTime"`
	TotalBreakTime       int `json:"totalBreakTime"`
	SessionsCompleted    int `json:"sessionsCompleted"`
	SessionsStarted      int `json:"sessionsStarted"`
	AverageSessionLength int `json:"averageSessionLength"`
	LongestStreak        int `json:"longestStreak"`
	CurrentStreak        int `json:"currentStreak"`
	Productivity         int `json:"productivity"`
}
