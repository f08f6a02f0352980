package cmd

import (
	"testing"
)

func TestCommandRegistration(t *testing.T) {
	t.Log("Every documented top-level command must be wired into the root")

	want := map[string]bool{
		"challenge":  false,
		"analyze":    false,
		"compare":    false,
		"device":     false,
		"version":    false,
		"completion": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestChallengeGenerateFlags(t *testing.T) {
	f := challengeGenerateCmd.Flags()

	if f.Lookup("input") == nil {
		t.Fatal("--input flag missing")
	}
	for flag, want := range map[string]string{
		"challenge-size": "128",
		"iterations":     "10000",
		"salt":           "ESP32-SRAM-PUF-Auth-v1",
	} {
		got := f.Lookup(flag)
		if got == nil {
			t.Errorf("--%s flag missing", flag)
			continue
		}
		if got.DefValue != want {
			t.Errorf("--%s default = %s, want %s", flag, got.DefValue, want)
		}
	}
}

func TestDeviceSubcommands(t *testing.T) {
	want := map[string]bool{"add": false, "list": false, "remove": false, "verify": false}
	for _, c := range deviceCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("device subcommand %q not registered", name)
		}
	}
}
