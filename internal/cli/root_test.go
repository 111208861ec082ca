package cli

import "testing"

func TestNewRootCommand(t *testing.T) {
	rootCmd := NewRootCommand()

	if rootCmd.Use != "radlog" {
		t.Errorf("Unexpected Use: %s", rootCmd.Use)
	}

	want := map[string]bool{"check": false, "inspect": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing subcommand: %s", name)
		}
	}
}
