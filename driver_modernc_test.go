//go:build !mattn

package bioinfodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	pragmas := []pragma{
		{name: "busy_timeout", value: "5000"},
		{name: "journal_mode", value: "WAL"},
	}

	tests := []struct {
		name    string
		path    string
		pragmas []pragma
		want    string
	}{
		{
			name:    "file",
			path:    "data/bio.sqlite",
			pragmas: pragmas,
			want:    "file:data/bio.sqlite?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		},
		{
			name:    "memory",
			path:    MemoryPath,
			pragmas: pragmas,
			want:    "file::memory:?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		},
		{
			name: "no pragmas",
			path: "bio.sqlite",
			want: "file:bio.sqlite",
		},
		{
			name:    "URI characters in the path",
			path:    "runs/run#1 what?100%.sqlite",
			pragmas: pragmas[:1],
			want:    "file:runs/run%231 what%3F100%25.sqlite?_pragma=busy_timeout(5000)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, buildDSN(tt.path, tt.pragmas))
		})
	}
}
