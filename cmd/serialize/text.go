// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize/base64"
	"github.com/ssbc/serialize/hex"
)

func runBase64(cfg Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("base64", flag.ContinueOnError)
	decode := fs.Bool("d", false, "decode")
	charset := fs.String("charset", cfg.Base64.CharSet, "standard or url")
	wrap := fs.Int("wrap", cfg.Base64.Wrap, "line length, 0 disables wrapping")
	crlf := fs.Bool("crlf", cfg.Base64.CRLF, "break lines with CRLF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	if *decode {
		raw, err := base64.Decode(strings.TrimSpace(string(data)))
		if err != nil {
			return err
		}
		_, err = out.Write(raw)
		return err
	}

	cfgB64 := base64.Config{Pad: true, LineLength: *wrap}
	switch *charset {
	case "standard", "":
	case "url":
		cfgB64.CharSet = base64.URLSafe
		cfgB64.Pad = false
	default:
		return errors.Errorf("unknown charset %q", *charset)
	}
	if *crlf {
		cfgB64.Newline = base64.CRLF
	}

	_, err = io.WriteString(out, base64.Encode(data, cfgB64)+"\n")
	return err
}

func runHex(cfg Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("hex", flag.ContinueOnError)
	decode := fs.Bool("d", false, "decode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	if *decode {
		raw, err := hex.Decode(strings.TrimSpace(string(data)))
		if err != nil {
			return err
		}
		_, err = out.Write(raw)
		return err
	}

	_, err = io.WriteString(out, hex.Encode(data)+"\n")
	return err
}
