package notify

import (
	"context"
	"strings"
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("engine@board.test", []string{"ops@board.test"}, []domain.BrokenImport{
		{ATS: "workday", Source: "error_during_api_call", Email: "emp@x.test", Error: "status 502"},
		{ATS: "lever", Source: "transform_jobs", Error: "unexpected batch payload"},
	}))

	assert.Contains(t, msg, "Subject: Job import: 2 problem(s) this run")
	assert.Contains(t, msg, "To: ops@board.test")
	assert.Contains(t, msg, "ats=lever")
	assert.Contains(t, msg, "employer=emp@x.test")
	// sorted by provider, lever before workday
	assert.Less(t, strings.Index(msg, "ats=lever"), strings.Index(msg, "ats=workday"))
}

func TestSMTPNotifierUnconfigured(t *testing.T) {
	err := SMTPNotifier{}.SendBrokenImports(context.Background(), []domain.BrokenImport{{Error: "x"}})
	require.Error(t, err)
}

func TestSMTPNotifierNothingToSend(t *testing.T) {
	require.NoError(t, SMTPNotifier{}.SendBrokenImports(context.Background(), nil))
}

func TestLogNotifier(t *testing.T) {
	var lines []string
	n := LogNotifier{Printf: func(format string, args ...any) {
		lines = append(lines, format)
	}}
	require.NoError(t, n.SendBrokenImports(context.Background(), []domain.BrokenImport{{Error: "a"}, {Error: "b"}}))
	assert.Len(t, lines, 2)
}
