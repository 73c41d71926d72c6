// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/serialize/hex"
	"github.com/ssbc/serialize/json"
	"github.com/ssbc/serialize/persist"
)

func run(t *testing.T, cmd command, cfg Config, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cmd(cfg, args, strings.NewReader(input), &out)
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	r := require.New(t)

	cfg, err := loadConfig("")
	r.NoError(err)
	r.Equal(defaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	err = os.WriteFile(path, []byte("from: yaml\nindent: 4\nbase64:\n  charset: url\n  wrap: 76\n"), 0600)
	r.NoError(err)

	cfg, err = loadConfig(path)
	r.NoError(err)
	r.Equal("yaml", cfg.From)
	r.Equal("json", cfg.To, "default kept")
	r.Equal(4, cfg.Indent)
	r.Equal("url", cfg.Base64.CharSet)
	r.Equal(76, cfg.Base64.Wrap)

	err = os.WriteFile(path, []byte("form: yaml\n"), 0600)
	r.NoError(err)
	_, err = loadConfig(path)
	r.Error(err, "unknown fields are rejected")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	r.Error(err)

	for _, empty := range []string{"", "# nothing set\n"} {
		r.NoError(os.WriteFile(path, []byte(empty), 0600))
		cfg, err = loadConfig(path)
		r.NoError(err, "empty config %q", empty)
		r.Equal(defaultConfig(), cfg)
	}
}

func TestConvert(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()
	input := "{\"a\":1,\"b\":[true,null]}\n{\"c\":\"x\"}\n"

	out, err := run(t, runConvert, cfg, input)
	r.NoError(err)
	r.Equal(input, out)

	for _, format := range []string{"msgpack", "cbor", "yaml", "protobuf"} {
		for _, comp := range []string{"", "gzip", "snappy"} {
			packed, err := run(t, runConvert, cfg, input, "-to", format, "-compress", comp)
			r.NoError(err, "%s %s", format, comp)

			back, err := run(t, runConvert, cfg, packed, "-from", format, "-decompress", comp)
			r.NoError(err, "%s %s", format, comp)
			r.Equal(input, back, "%s %s", format, comp)
		}
	}

	_, err = run(t, runConvert, cfg, input, "-to", "xml")
	r.Error(err)
	_, err = run(t, runConvert, cfg, input, "-compress", "zip")
	r.Error(err)
	_, err = run(t, runConvert, cfg, "{nope}\n")
	r.Error(err)
}

func TestPretty(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()

	out, err := run(t, runPretty, cfg, `{"b":[1,2],"a":"x"}`)
	r.NoError(err)
	r.Equal("{\n  \"a\": \"x\",\n  \"b\": [\n    1,\n    2\n  ]\n}\n", out)

	out, err = run(t, runPretty, cfg, `{"a":{"b":null}}`, "-indent", "0")
	r.NoError(err)
	r.Equal("{\n\"a\": {\n\"b\": null\n}\n}\n", out)

	_, err = run(t, runPretty, cfg, `[1,2`)
	var se json.SyntaxError
	r.True(errors.As(err, &se), "got %v", err)
}

func TestEvents(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()

	out, err := run(t, runEvents, cfg, `{"a":[1,true],"b":"x","c":-2.5}`)
	r.NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	r.Len(lines, 8, out)
	r.True(strings.HasPrefix(lines[0], "ObjectStart"), lines[0])
	r.Contains(lines, "U64 a[0] 1")
	r.Contains(lines, "Bool a[1] true")
	r.Contains(lines, `String b "x"`)
	r.Contains(lines, "F64 c -2.5")
	r.True(strings.HasPrefix(lines[7], "ObjectEnd"), lines[7])

	_, err = run(t, runEvents, cfg, `[1,`)
	var se json.SyntaxError
	r.True(errors.As(err, &se), "got %v", err)
}

func TestBase64(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()

	out, err := run(t, runBase64, cfg, "hello")
	r.NoError(err)
	r.Equal("aGVsbG8=\n", out)

	out, err = run(t, runBase64, cfg, "\xfb\xff", "-charset", "url")
	r.NoError(err)
	r.Equal("-_8\n", out)

	out, err = run(t, runBase64, cfg, strings.Repeat("x", 30), "-wrap", "8")
	r.NoError(err)
	r.Equal(5, strings.Count(out, "\n"), out)

	out, err = run(t, runBase64, cfg, "aGVs\nbG8=\n", "-d")
	r.NoError(err)
	r.Equal("hello", out)

	_, err = run(t, runBase64, cfg, "x", "-charset", "ebcdic")
	r.Error(err)
}

func TestHex(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()

	out, err := run(t, runHex, cfg, "hi")
	r.NoError(err)
	r.Equal("6869\n", out)

	out, err = run(t, runHex, cfg, "6869\n", "-d")
	r.NoError(err)
	r.Equal("hi", out)

	_, err = run(t, runHex, cfg, "zz", "-d")
	var ice hex.InvalidCharacterError
	r.True(errors.As(err, &ice), "got %v", err)
}

func TestStore(t *testing.T) {
	for _, backend := range []string{"fs", "sqlite", "mkv"} {
		t.Run(backend, func(t *testing.T) {
			r := require.New(t)
			cfg := defaultConfig()
			cfg.Store.Backend = backend
			cfg.Store.Path = filepath.Join(t.TempDir(), "db")

			_, err := run(t, runStore, cfg, `{"a":[1,2]}`, "put", "k")
			r.NoError(err)

			out, err := run(t, runStore, cfg, "", "get", "k")
			r.NoError(err)
			r.Equal("{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", out)

			out, err = run(t, runStore, cfg, "", "list")
			r.NoError(err)
			r.Equal("k\n", out)

			_, err = run(t, runStore, cfg, "", "rm", "k")
			r.NoError(err)

			_, err = run(t, runStore, cfg, "", "get", "k")
			r.Equal(persist.ErrNotFound, errors.Cause(err))

			_, err = run(t, runStore, cfg, "", "get")
			r.Error(err)
		})
	}
}

func TestLog(t *testing.T) {
	r := require.New(t)
	cfg := defaultConfig()
	file := filepath.Join(t.TempDir(), "records")

	out, err := run(t, runLog, cfg, "{\"n\":1}\n{\"n\":2}\n", "-file", file, "append")
	r.NoError(err)
	r.Equal("0\n1\n", out)

	out, err = run(t, runLog, cfg, "", "-file", file, "dump")
	r.NoError(err)
	r.Equal("{\"seq\":0,\"value\":{\"n\":1}}\n{\"seq\":1,\"value\":{\"n\":2}}\n", out)

	out, err = run(t, runLog, cfg, "", "-file", file, "-gt", "0", "dump")
	r.NoError(err)
	r.Equal("{\"seq\":1,\"value\":{\"n\":2}}\n", out)

	_, err = run(t, runLog, cfg, "", "-file", file, "truncate")
	r.Error(err)
}
