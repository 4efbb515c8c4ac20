package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-tempo/pkg/geom"
	"github.com/robert-malhotra/go-tempo/pkg/temporal"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	cmd.Reader = strings.NewReader(stdin)
	err := cmd.Run(context.Background(), append([]string{"tempo"}, args...))
	return out.String(), err
}

func TestParseCommandText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "int sequence",
			args: []string{"--type", "tint", "parse", "[10@2011-01-01, 20@2011-01-02)"},
			want: "[10@2011-01-01T00:00:00+0000, 20@2011-01-02T00:00:00+0000)",
		},
		{
			name: "flag after subcommand",
			args: []string{"parse", "--type", "tfloat", "Interp=Stepwise;[1.5@2011-01-01, 2@2011-01-02]"},
			want: "Interp=Stepwise;[1.5@2011-01-01T00:00:00+0000, 2@2011-01-02T00:00:00+0000]",
		},
		{
			name: "point with SRID flag",
			args: []string{"--type", "tgeompoint", "--srid", "4326", "parse", "POINT(1 2)@2011-01-01"},
			want: "SRID=4326;POINT (1 2)@2011-01-01T00:00:00+0000",
		},
		{
			name: "case insensitive type",
			args: []string{"--type", "TBOOL", "parse", "{t@2011-01-01, f@2011-01-02}"},
			want: "{t@2011-01-01T00:00:00+0000, f@2011-01-02T00:00:00+0000}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	out, err := run(t, "", "--type", "tint", "--format", "json", "parse", "[10@2011-01-01, 20@2011-01-02)")
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "tint", summary["type"])
	assert.Equal(t, "Sequence", summary["duration"])
	assert.Equal(t, "Stepwise", summary["interpolation"])
	assert.Equal(t, 2.0, summary["numInstants"])
	assert.Equal(t, "10", summary["minValue"])
	assert.Equal(t, "24h0m0s", summary["timespan"])
	assert.NotContains(t, summary, "srid")
}

func TestParseCommandGeoJSON(t *testing.T) {
	out, err := run(t, "", "--type", "tgeompoint", "--format", "geojson", "parse",
		"SRID=4326;[POINT(1 2)@2011-01-01, POINT(3 4)@2011-01-02]")
	require.NoError(t, err)

	var feature map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &feature))
	assert.Equal(t, "Feature", feature["type"])
	geometry, ok := feature["geometry"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "LineString", geometry["type"])
	props, ok := feature["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sequence", props["duration"])

	_, err = run(t, "", "--type", "tint", "--format", "geojson", "parse", "1@2011-01-01")
	assert.Error(t, err)
}

func TestParseCommandEWKB(t *testing.T) {
	out, err := run(t, "", "--type", "tgeompoint", "--format", "ewkb", "parse",
		"SRID=4326;{POINT(1 2)@2011-01-01, POINT(3 4)@2011-01-02}")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	first, err := temporal.ParseInstant[geom.Point](lines[0])
	require.NoError(t, err)
	assert.Equal(t, geom.MakePoint(1, 2).WithSRID(4326), first.Value())
	assert.Equal(t, "2011-01-01T00:00:00+0000", temporal.FormatTimestamp(first.Timestamp()))
	second, err := temporal.ParseInstant[geom.Point](lines[1])
	require.NoError(t, err)
	assert.Equal(t, geom.MakePoint(3, 4).WithSRID(4326), second.Value())

	stream, err := run(t, "1@2011-01-01 2@2011-01-02", "--type", "tint", "--format", "ewkb", "stream")
	assert.Error(t, err)
	assert.Empty(t, stream)

	_, err = run(t, "", "--type", "tgeompoint", "--format", "ewkb", "box", "POINT(1 2)@2011-01-01")
	assert.Error(t, err)
}

func TestStreamCommand(t *testing.T) {
	input := "10@2011-01-01 {20@2011-01-02, 30@2011-01-03}\n[1@2011-01-04, 2@2011-01-05]"

	out, err := run(t, input, "--type", "tint", "stream")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"10@2011-01-01T00:00:00+0000",
		"{20@2011-01-02T00:00:00+0000, 30@2011-01-03T00:00:00+0000}",
		"[1@2011-01-04T00:00:00+0000, 2@2011-01-05T00:00:00+0000]",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	out, err = run(t, input, "--type", "tint", "--format", "json", "stream")
	require.NoError(t, err)
	var summaries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 3)
	assert.Equal(t, "InstantSet", summaries[1]["duration"])

	out, err = run(t, input, "--type", "tint", "--format", "yaml", "stream")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "---"))
	assert.Contains(t, out, "duration: InstantSet")
}

func TestStreamCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "literals.txt")
	require.NoError(t, os.WriteFile(path, []byte(`"a"@2011-01-01 "b"@2011-01-02`), 0o644))

	out, err := run(t, "", "--type", "ttext", "stream", path)
	require.NoError(t, err)
	assert.Equal(t, "\"a\"@2011-01-01T00:00:00+0000\n\"b\"@2011-01-02T00:00:00+0000\n", out)
}

func TestStreamCommandStopsAtError(t *testing.T) {
	out, err := run(t, "1@2011-01-01 oops", "--type", "tint", "stream")
	require.Error(t, err)
	assert.ErrorIs(t, err, temporal.ErrMalformedLiteral)
	assert.Equal(t, "1@2011-01-01T00:00:00+0000\n", out)
}

func TestBoxCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "float",
			args: []string{"--type", "tfloat", "box", "[1.5@2011-01-01, 3@2011-01-02]"},
			want: "TBOX((1.5, 2011-01-01T00:00:00+0000), (3, 2011-01-02T00:00:00+0000))",
		},
		{
			name: "bool gets a time box",
			args: []string{"--type", "tbool", "box", "{t@2011-01-01, f@2011-01-03}"},
			want: "TBOX((, 2011-01-01T00:00:00+0000), (, 2011-01-03T00:00:00+0000))",
		},
		{
			name: "point",
			args: []string{"--type", "tgeompoint", "--srid", "4326", "box", "[POINT(1 4)@2011-01-01, POINT(3 2)@2011-01-02]"},
			want: "SRID=4326;STBOX T((1, 2, 2011-01-01T00:00:00+0000), (3, 4, 2011-01-02T00:00:00+0000))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	out, err := run(t, "", "--type", "tgeompoint", "--format", "geojson", "box", "[POINT(1 4)@2011-01-01, POINT(3 2)@2011-01-02]")
	require.NoError(t, err)
	assert.Contains(t, out, `"type":"Polygon"`)
}

func TestSettingsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: tbool\nformat: json\n"), 0o644))

	out, err := run(t, "", "--config", path, "parse", "t@2011-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "tbool"`)

	t.Setenv("TEMPO_FORMAT", "yaml")
	out, err = run(t, "", "--config", path, "parse", "t@2011-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "type: tbool")

	out, err = run(t, "", "--config", path, "--format", "text", "parse", "t@2011-01-01")
	require.NoError(t, err)
	assert.Equal(t, "t@2011-01-01T00:00:00+0000\n", out)

	t.Setenv("TEMPO_TYPE", "ttext")
	out, err = run(t, "", "--format", "text", "parse", `"x"@2011-01-01`)
	require.NoError(t, err)
	assert.Equal(t, "\"x\"@2011-01-01T00:00:00+0000\n", out)
}

func TestCommandErrors(t *testing.T) {
	badConfig := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("colour: blue\n"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing type", args: []string{"parse", "1@2011-01-01"}},
		{name: "unknown type", args: []string{"--type", "tcomplex", "parse", "1@2011-01-01"}},
		{name: "unknown format", args: []string{"--type", "tint", "--format", "xml", "parse", "1@2011-01-01"}},
		{name: "missing literal", args: []string{"--type", "tint", "parse"}},
		{name: "malformed literal", args: []string{"--type", "tint", "parse", "1@"}},
		{name: "unknown config key", args: []string{"--config", badConfig, "--type", "tint", "parse", "1@2011-01-01"}},
		{name: "missing config", args: []string{"--config", badConfig + ".missing", "--type", "tint", "parse", "1@2011-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}
