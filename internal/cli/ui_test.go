package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/mindgeo/pkg/pipeline"
)

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name  string
		stats pipeline.Stats
		want  []string
	}{
		{"fresh", pipeline.Stats{NodeCount: 4, EdgeCount: 3}, []string{"4 nodes", "3 edges", "fresh"}},
		{"cached", pipeline.Stats{NodeCount: 1, CacheHit: true}, []string{"1 nodes", "0 edges", "cached"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := withUIOutput(t)
			printStats(tt.stats)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output = %q, missing %q", buf.String(), w)
				}
			}
		})
	}
}
