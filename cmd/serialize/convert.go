// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ssbc/serialize/codec"
	"github.com/ssbc/serialize/codec/all"
	"github.com/ssbc/serialize/compress"
	"github.com/ssbc/serialize/json"
)

// newCodec returns the generic codec for format, compressed if comp is set.
func newCodec(format, comp string) (codec.Codec, error) {
	f, err := all.Registry().Get(format)
	if err != nil {
		return nil, errors.Wrapf(err, "format %q", format)
	}

	c := f(nil)
	if comp == "" {
		return c, nil
	}

	cmp, err := compress.ByName(comp)
	if err != nil {
		return nil, errors.Wrapf(err, "compression %q", comp)
	}
	return codec.Compressed(c, cmp), nil
}

func runConvert(cfg Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	from := fs.String("from", cfg.From, "input format")
	to := fs.String("to", cfg.To, "output format")
	decomp := fs.String("decompress", "", "compression of the input")
	comp := fs.String("compress", cfg.Compression, "compression of the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inCodec, err := newCodec(*from, *decomp)
	if err != nil {
		return err
	}
	outCodec, err := newCodec(*to, *comp)
	if err != nil {
		return err
	}

	dec := inCodec.NewDecoder(in)
	enc := outCodec.NewEncoder(out)
	for i := 0; ; i++ {
		v, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to decode document %d", i)
		}

		if err := enc.Encode(v); err != nil {
			return errors.Wrapf(err, "failed to encode document %d", i)
		}
	}
}

func runPretty(cfg Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("pretty", flag.ContinueOnError)
	indent := fs.Int("indent", cfg.Indent, "spaces per level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := json.ParseReader(in)
	if err != nil {
		return err
	}

	enc := json.NewPrettyEncoder(out)
	if err := enc.SetIndent(*indent); err != nil {
		return err
	}
	if err := v.Encode(enc); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

// runEvents prints one line per parser event: kind, path and value.
func runEvents(cfg Config, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := json.NewParser(bufio.NewReader(in))
	for {
		ev, ok := p.Next()
		if !ok {
			return nil
		}
		if ev.Kind == json.ErrorEvent {
			return ev.Err
		}

		path := p.Stack().String()
		if path == "" {
			path = "."
		}

		line := fmt.Sprintf("%s %s", ev.Kind, path)
		switch ev.Kind {
		case json.BoolEvent:
			line += " " + strconv.FormatBool(ev.Bool)
		case json.I64Event:
			line += " " + strconv.FormatInt(ev.I64, 10)
		case json.U64Event:
			line += " " + strconv.FormatUint(ev.U64, 10)
		case json.F64Event:
			line += " " + strconv.FormatFloat(ev.F64, 'g', -1, 64)
		case json.StringEvent:
			line += " " + strconv.Quote(ev.String)
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
}
