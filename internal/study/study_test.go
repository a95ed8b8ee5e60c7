package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNightOwl(t *testing.T) {
	tests := []struct {
		hour string
		want bool
	}{
		{"22:00", true},
		{"23:59", true},
		{"03:00", true},
		{"05:59", true},
		{"06:00", false},
		{"12:00", false},
		{"20:59", false},
		{"21:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.hour, func(t *testing.T) {
			now, err := time.Parse("15:04", tt.hour)
			assert.NoError(t, err)
			msg, night := NightOwl(now)
			assert.Equal(t, tt.want, night)
			assert.Equal(t, tt.want, msg != "")
		})
	}
}

func TestCuratedStringsNotEmpty(t *testing.T) {
	assert.NotEmpty(t, Motivational())
	assert.NotEmpty(t, Quote())
	assert.NotEmpty(t, Tip())
	assert.Len(t, Units, 5)
	assert.NotEmpty(t, FrequentQuestions)
}
