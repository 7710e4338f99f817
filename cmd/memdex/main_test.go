package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdex"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    uint32
		wantErr bool
	}{
		{name: "zero", args: []string{"0"}, want: 0},
		{name: "plain", args: []string{"12345"}, want: 12345},
		{name: "max_valid", args: []string{"2147483646"}, want: 2147483646},
		{name: "limit_rejected", args: []string{"2147483647"}, wantErr: true},
		{name: "negative", args: []string{"-1"}, wantErr: true},
		{name: "garbage", args: []string{"abc"}, wantErr: true},
		{name: "missing", args: nil, wantErr: true},
		{name: "extra", args: []string{"1", "2"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseKey(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunSession(t *testing.T) {
	color.NoColor = true

	tree, err := memdex.New(memdex.WithMinDegree(3))
	require.NoError(t, err)
	defer tree.Close()

	script := strings.Join([]string{
		"ADD 5",
		"ADD 3",
		"FIND 5",
		"DEL 5",
		"FIND 5",
		"DEL 5",
		"ADD 2147483647",
		"bogus",
		"STATS",
		"EXIT",
	}, "\n")

	var out strings.Builder
	err = run(bufio.NewScanner(strings.NewReader(script)), &out, tree)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Available commands:")
	assert.Contains(t, got, "ADDED 5")
	assert.Contains(t, got, "ADDED 3")
	assert.Contains(t, got, "5 FOUND")
	assert.Contains(t, got, "DELETED 5")
	assert.Contains(t, got, "5 NOT IN TREE")
	assert.Contains(t, got, "key must be an integer in [0, 2147483647)")
	assert.Contains(t, got, `unknown command "bogus"`)
	assert.Contains(t, got, "keys=1 height=1")
}

func TestRenderEmpty(t *testing.T) {
	color.NoColor = true

	tree, err := memdex.New()
	require.NoError(t, err)
	defer tree.Close()

	var out strings.Builder
	render(&out, tree)
	assert.Equal(t, "(empty)\n", out.String())
}
