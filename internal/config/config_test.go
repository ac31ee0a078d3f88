package config

import (
	"os"
	"path/filepath"
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, "config.yml", `
import:
  employers_file: employers.yml
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Import.Workers)
	assert.Equal(t, 15, cfg.Import.IntervalMinutes)
	assert.Equal(t, "boardfeed.db", cfg.App.DBFile)
	assert.True(t, Validate(cfg).OK())
}

func TestValidateCatchesMissingRoster(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	v := Validate(cfg)
	assert.False(t, v.OK())
}

func TestLoadEmployers(t *testing.T) {
	path := writeFile(t, "employers.yml", `
- id: 1
  company_name: Acme
  email: jobs@acme.test
  ats: lever
  ats_url_param: acme
  active: true
  import_jobs: true
  job_board_ids: [10, 11]
- id: 2
  company_name: Idle
  ats: greenhouse
  ats_url_param: idle
  active: false
  import_jobs: true
`)
	employers, err := LoadEmployers(path)
	require.NoError(t, err)
	require.Len(t, employers, 2)

	assert.Equal(t, domain.KindLever, employers[0].ATS)
	assert.True(t, employers[0].Eligible())
	assert.Equal(t, []int64{10, 11}, employers[0].JobBoardIDs)
	assert.False(t, employers[1].Eligible())

	v := ValidateEmployers(employers)
	assert.True(t, v.OK())
	assert.Empty(t, v.Warnings, "ineligible employers are not warned about")
}

func TestValidateBoards(t *testing.T) {
	employers := []domain.Employer{{
		ID: 1, CompanyName: "Acme", ATS: domain.KindLever, ATSURLParam: "acme",
		Active: true, ImportJobs: true, JobBoardIDs: []int64{10, 99},
	}}
	boards := []domain.JobBoard{
		{ID: 10, Name: "Main"},
		{ID: 10, Name: "Copy"},
	}
	v := ValidateBoards(employers, boards)
	require.Len(t, v.Errors, 1, "duplicate board id")
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "unknown board 99")
}

func TestValidateEmployersErrors(t *testing.T) {
	employers := []domain.Employer{
		{ID: 1, CompanyName: "NoSlug", ATS: domain.KindLever, Active: true, ImportJobs: true},
		{ID: 1, CompanyName: "Dup", ATS: "mystery", Active: true, ImportJobs: true, ATSURLParam: "x"},
	}
	v := ValidateEmployers(employers)
	assert.False(t, v.OK())
	assert.Len(t, v.Errors, 3, "missing slug, duplicate id, unknown ats")
}
