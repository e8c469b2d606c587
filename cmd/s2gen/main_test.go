package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("S2GEN_CONFIG", "")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "equals", args: []string{"generate", "--config=s2.yaml"}, want: "s2.yaml"},
		{name: "separate", args: []string{"--config", "s2.toml", "check"}, want: "s2.toml"},
		{name: "dangling", args: []string{"list", "--config"}, want: ""},
		{name: "absent", args: []string{"list", "-s", "spec.yaml"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findUserConfig(tt.args))
		})
	}
}

func TestFindUserConfigEnv(t *testing.T) {
	t.Setenv("S2GEN_CONFIG", "/etc/s2gen/custom.json")
	assert.Equal(t, "/etc/s2gen/custom.json", findUserConfig(nil))
}
