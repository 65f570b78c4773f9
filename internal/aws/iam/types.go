package iam

import "time"

type IAMUser struct {
	Name      string
	UserID    string
	ARN       string
	Path      string
	CreatedAt time.Time
}

type AccessKey struct {
	AccessKeyID string
	UserName    string
	Status      string // "Active" or "Inactive"
	CreatedAt   time.Time
}

// AccountSummary maps IAM summary keys (e.g. "Users", "AccountMFAEnabled")
// to their values.
type AccountSummary map[string]int
