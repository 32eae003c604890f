package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048575, "1024 KB"},
		{1048576, "1 MB"},
		{1024768, "1000.8 KB"},
		{2048576, "2 MB"},
		{1073741824, "1 GB"},
		{1099511627776, "1 TB"},
		{1099511627776 * 2048, "2048 TB"},
		{-5, "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.bytes))
		})
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 1, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"same day", time.Date(2024, 1, 25, 9, 5, 0, 0, time.UTC), "09:05 AM"},
		{"under 24h across midnight", time.Date(2024, 1, 24, 13, 30, 0, 0, time.UTC), "01:30 PM"},
		{"yesterday", time.Date(2024, 1, 24, 11, 0, 0, 0, time.UTC), "Yesterday"},
		{"few days", time.Date(2024, 1, 22, 12, 0, 0, 0, time.UTC), "3 days ago"},
		{"six days", time.Date(2024, 1, 19, 11, 0, 0, 0, time.UTC), "6 days ago"},
		{"a week", time.Date(2024, 1, 18, 12, 0, 0, 0, time.UTC), "1/18/2024"},
		{"future", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "2/1/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.at, now))
		})
	}
}
