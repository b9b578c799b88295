package bootstrap

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuildRootCmdTree(t *testing.T) {
	log := zerolog.Nop()
	root := buildRootCmd(context.Background(), &log, &cliOptions{})
	want := map[string]bool{"up": false, "doctor": false, "models": false, "config": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestBuildRootCmdRejectsBadLogLevel(t *testing.T) {
	log := zerolog.Nop()
	opts := &cliOptions{}
	root := buildRootCmd(context.Background(), &log, opts)
	root.SetArgs([]string{"doctor", "--log-level", "loud"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}
