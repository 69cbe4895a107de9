package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReportID_Format(t *testing.T) {
	id := GenerateReportID("battle", "Lancer Mk II")

	assert.Regexp(t, regexp.MustCompile(`^battle-lancer-mk-ii-[0-9a-f]{8}$`), id)
}

func TestGenerateReportID_EmptyLabel(t *testing.T) {
	id := GenerateReportID("battle", " -- ")

	assert.Regexp(t, regexp.MustCompile(`^battle-[0-9a-f]{8}$`), id)
}

func TestGenerateReportID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateReportID("battle", "anvil")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lancer Mk II", "lancer-mk-ii"},
		{"  --Anvil--  ", "anvil"},
		{"frigate_7", "frigate-7"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
