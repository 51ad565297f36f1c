package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelayFiltersByType(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		`{"type":"welcome","transport":"tcp","clients":1}`,
		`{"type":"roster.created","roster_id":1}`,
		`{"type":"roster.members_set","roster_id":1,"members":[1,4]}`,
		`not json`,
	}, "\n"))

	var out bytes.Buffer
	err := relay(in, false, parseTypes("roster.members_set"), &out)
	assert.ErrorIs(t, err, io.EOF)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		`{"type":"welcome","transport":"tcp","clients":1}`,
		`{"type":"roster.members_set","roster_id":1,"members":[1,4]}`,
		`not json`,
	}, lines)
}

func TestParseTypes(t *testing.T) {
	assert.Nil(t, parseTypes("  "))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, parseTypes("a, b,"))
}
