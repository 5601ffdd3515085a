package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
	ErrConflict  = errors.New("resource was modified concurrently")
)

// RecordStatus is the soft-delete flag every persisted row carries.
// Rows are never hard-deleted; deletion sets INACTIVE.
type RecordStatus string

const (
	RecordStatusActive    RecordStatus = "ACTIVE"
	RecordStatusInactive  RecordStatus = "INACTIVE"
	RecordStatusPending   RecordStatus = "PENDING"
	RecordStatusSuspended RecordStatus = "SUSPENDED"
)

// SplitSkills parses a comma-separated skills field into a list of
// trimmed, non-empty entries.
func SplitSkills(csv string) []string {
	if csv == "" {
		return []string{}
	}
	parts := strings.Split(csv, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
