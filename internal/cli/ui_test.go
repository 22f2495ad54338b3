package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/frame/pkg/pipeline"
)

func TestStatsLine(t *testing.T) {
	s := pipeline.Stats{Modules: 3, Nets: 2, Nodes: 4, Hypernodes: 1, Edges: 4}

	line := statsLine(s, true)
	for _, want := range []string{"3 modules", "2 nets", "4 nodes", "1 hypernodes", "4 edges", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine = %q, missing %q", line, want)
		}
	}

	line = statsLine(pipeline.Stats{Modules: 2, Nets: 1, Nodes: 2, Edges: 1}, false)
	if strings.Contains(line, "hypernodes") {
		t.Errorf("hypernodes shown without any: %q", line)
	}
	if strings.Contains(line, "components") {
		t.Errorf("a connected graph should not list components: %q", line)
	}
	if !strings.Contains(statsLine(pipeline.Stats{Components: 3}, false), "3 components") {
		t.Error("disconnected graphs should list their components")
	}
	if !strings.Contains(line, "fresh") {
		t.Errorf("statsLine = %q, want fresh marker", line)
	}
}
