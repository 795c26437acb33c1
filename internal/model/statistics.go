package model

// UserStatistics is the per-user account summary.
type UserStatistics struct {
	Orders     int64 `json:"orders"`
	Reviews    int64 `json:"reviews"`
	TotalSpent int64 `json:"totalSpent"`
}
