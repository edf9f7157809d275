package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelp(t *testing.T) {
	cases := goldenTestSuite{
		"help-all": {
			Args: []string{"help"},
		},
		"help-topics": {
			Args: []string{"help", "pwd", "cd"},
		},
		"help-unknown": {
			Args: []string{"help", "lp", "nope"},
		},
	}

	cases.Run(t, Help)
}

func TestHelpUsage(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env, _ := newTestEnv(stdout, stderr)

	assert.NoError(t, Help(env, []string{"help", "--help"}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "usage: help [-h] [NAME...]")
	assert.Contains(t, stderr.String(), "--help")
}
