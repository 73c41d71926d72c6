// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"go.uber.org/zap"

	cjson "github.com/ssbc/serialize/codec/json"
	"github.com/ssbc/serialize/framing/basic"
	"github.com/ssbc/serialize/json"
	"github.com/ssbc/serialize/offset"
	"github.com/ssbc/serialize/persist"
	"github.com/ssbc/serialize/persist/badger"
	"github.com/ssbc/serialize/persist/fs"
	"github.com/ssbc/serialize/persist/mem"
	"github.com/ssbc/serialize/persist/mkv"
	"github.com/ssbc/serialize/persist/sqlite"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

type closeFunc func() error

func openSaver(backend, path string, log *zap.Logger) (persist.Saver, closeFunc, error) {
	noop := func() error { return nil }
	switch backend {
	case "mem":
		return mem.New(), noop, nil
	case "fs":
		s, err := fs.New(path, log)
		return s, noop, err
	case "badger":
		s, err := badger.New(path, log)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "mkv":
		s, err := mkv.New(path, log)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "sqlite":
		s, err := sqlite.New(path, log)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	return nil, noop, errors.Errorf("unknown backend %q", backend)
}

// runStore keeps documents by key. put reads one JSON document, get writes it
// back as indented JSON.
func runStore(cfg Config, args []string, in io.Reader, out io.Writer) (err error) {
	fset := flag.NewFlagSet("store", flag.ContinueOnError)
	backend := fset.String("backend", cfg.Store.Backend, "mem, fs, badger, mkv or sqlite")
	path := fset.String("db", cfg.Store.Path, "database location")
	format := fset.String("format", cfg.Store.Format, "format of the stored values")
	verbose := fset.Bool("v", false, "log backend activity")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() < 1 {
		return errors.New("usage: store [flags] put|get|rm <key> or store [flags] list")
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	valueCodec, err := newCodec(*format, "")
	if err != nil {
		return err
	}

	saver, closer, err := openSaver(*backend, *path, log)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer func() {
		if cerr := closer(); err == nil {
			err = cerr
		}
	}()
	store := persist.NewStore(saver, valueCodec)

	op := fset.Arg(0)
	if op == "list" {
		keys, err := store.List()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(out, string(k))
		}
		return nil
	}

	if fset.NArg() != 2 {
		return errors.Errorf("%s needs a key", op)
	}
	key := persist.Key(fset.Arg(1))

	switch op {
	case "put":
		doc, err := json.ParseReader(in)
		if err != nil {
			return errors.Wrap(err, "failed to read document")
		}
		return store.Put(key, doc)

	case "get":
		v, err := store.Get(key)
		if err != nil {
			return err
		}
		data, err := cjson.NewPretty(nil).Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err

	case "rm":
		return store.Delete(key)
	}
	return errors.Errorf("unknown store operation %q", op)
}

// runLog appends JSON documents to a record file or dumps it.
func runLog(cfg Config, args []string, in io.Reader, out io.Writer) (err error) {
	fset := flag.NewFlagSet("log", flag.ContinueOnError)
	file := fset.String("file", "records.log", "record file")
	format := fset.String("format", cfg.Store.Format, "format of the records")
	gt := fset.Int64("gt", int64(offset.SeqEmpty), "dump records after this sequence")
	limit := fset.Int("limit", -1, "dump at most this many records")
	verbose := fset.Bool("v", false, "log file activity")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 1 {
		return errors.New("usage: log [flags] append|dump")
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	recordCodec, err := newCodec(*format, "")
	if err != nil {
		return err
	}

	rlog, err := offset.Open(*file, basic.New32(offset.DefaultFrameSize), recordCodec, offset.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rlog.Close(); err == nil {
			err = cerr
		}
	}()

	switch fset.Arg(0) {
	case "append":
		dec := cjson.New(nil).NewDecoder(in)
		for {
			v, err := dec.Decode()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "failed to read document")
			}

			seq, err := rlog.Append(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, seq)
		}

	case "dump":
		qry, err := rlog.Query(offset.Gt(offset.Seq(*gt)), offset.Limit(*limit), offset.SeqWrap(true))
		if err != nil {
			return err
		}

		enc := cjson.New(nil).NewEncoder(out)
		sink := luigi.FuncSink(func(ctx context.Context, v interface{}, err error) error {
			if err != nil {
				if luigi.IsEOS(err) {
					return nil
				}
				return err
			}

			sw := v.(offset.SeqWrapper)
			rec := map[string]interface{}{
				"seq":   int64(sw.Seq()),
				"value": sw.Value(),
			}
			return enc.Encode(rec)
		})
		return luigi.Pump(context.Background(), sink, qry)
	}
	return errors.Errorf("unknown log operation %q", fset.Arg(0))
}
