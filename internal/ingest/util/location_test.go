package util

import (
	"testing"

	"boardfeed-engine/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		allowAnd bool
		want     string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "  \t ", want: ""},
		{name: "remote synonym", raw: "Anywhere", want: ""},
		{name: "synonym inside text", raw: "Remote - US", want: ""},
		{name: "talent network", raw: "Join our Talent Network", want: ""},
		{name: "or delimiter", raw: "new york or boston", want: "New York, Boston"},
		{name: "slash delimiter", raw: "Paris/London", want: "Paris, London"},
		{name: "and needs opt-in", raw: "london and berlin", want: "london and berlin"},
		{name: "and with opt-in", raw: "london and berlin", allowAnd: true, want: "London, Berlin"},
		{name: "plain city", raw: "Austin, TX", want: "Austin, TX"},
		{name: "nbsp collapsed", raw: "Austin, TX", want: "Austin, TX"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLocation(tc.raw, tc.allowAnd))
		})
	}
}

func TestComposeLocation(t *testing.T) {
	assert.Equal(t, "Oakland, CA, USA", ComposeLocation("Oakland", "CA", "USA"))
	assert.Equal(t, "CA, USA", ComposeLocation("", "CA", "USA"))
	assert.Equal(t, "", ComposeLocation("", "", ""))
	assert.Equal(t, "Berlin", ComposeLocation("Berlin", " ", ""))
}

func TestIsRemote(t *testing.T) {
	emp := domain.Employer{}
	remoteEmp := domain.Employer{Remote: true}

	assert.True(t, IsRemote(emp, "", "Engineer", false), "empty location")
	assert.True(t, IsRemote(remoteEmp, "Austin, TX", "Engineer", false), "employer default")
	assert.True(t, IsRemote(emp, "Austin, TX", "Engineer (Remote)", false), "title marker")
	assert.True(t, IsRemote(emp, "Austin, TX", "Engineer", true), "provider flag")
	assert.False(t, IsRemote(emp, "Austin, TX", "Engineer", false))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "New York", TitleCase("new york"))
	assert.Equal(t, "NYC", TitleCase("NYC"))
	assert.Equal(t, "", TitleCase(""))
}
