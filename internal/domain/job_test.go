package domain_test

import (
	"testing"
	"time"

	"jobsite-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewJobCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, `^JOB\d{6}$`, domain.NewJobCode())
	}
}

func TestJobIsActive(t *testing.T) {
	now := time.Now()
	base := domain.Job{
		JobStatus:    domain.JobStatusPublished,
		Deadline:     now.Add(24 * time.Hour),
		RecordStatus: domain.RecordStatusActive,
	}

	t.Run("Published with future deadline is active", func(t *testing.T) {
		j := base
		assert.True(t, j.IsActive(now))
	})

	t.Run("Past deadline is inactive", func(t *testing.T) {
		j := base
		j.Deadline = now.Add(-time.Minute)
		assert.False(t, j.IsActive(now))
		assert.True(t, j.IsExpired(now))
	})

	t.Run("Draft is inactive", func(t *testing.T) {
		j := base
		j.JobStatus = domain.JobStatusDraft
		assert.False(t, j.IsActive(now))
	})

	t.Run("Soft-deleted is inactive", func(t *testing.T) {
		j := base
		j.RecordStatus = domain.RecordStatusInactive
		assert.False(t, j.IsActive(now))
	})
}

func TestSalaryRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cases := []struct {
		name string
		min  *float64
		max  *float64
		want string
	}{
		{"both bounds", f(50000), f(80000), "$50,000 - $80,000"},
		{"min only", f(50000), nil, "From $50,000"},
		{"max only", nil, f(80000), "Up to $80,000"},
		{"neither", nil, nil, "Salary not specified"},
		{"small amounts ungrouped", f(900), f(999), "$900 - $999"},
		{"millions grouped", f(1250000), f(2000000), "$1,250,000 - $2,000,000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j := domain.Job{SalaryMin: tc.min, SalaryMax: tc.max}
			assert.Equal(t, tc.want, j.SalaryRange())
		})
	}
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Redis"}, domain.SplitSkills("Go, SQL ,Redis"))
	assert.Equal(t, []string{"Go"}, domain.SplitSkills("Go,,, "))
	assert.Empty(t, domain.SplitSkills(""))
}
