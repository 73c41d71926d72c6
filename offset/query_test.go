// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package offset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, qry *Query) []interface{} {
	t.Helper()
	var vs []interface{}
	for {
		v, err := qry.Next(context.Background())
		if luigi.IsEOS(err) {
			return vs
		}
		require.NoError(t, err)
		vs = append(vs, v)
	}
}

func TestQuery(t *testing.T) {
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()
	fill(t, log, 0)

	type tcase struct {
		name  string
		specs []QuerySpec
		want  []Seq
	}

	tcs := []tcase{
		{"all", nil, []Seq{0, 1, 2, 3}},
		{"gt", []QuerySpec{Gt(1)}, []Seq{2, 3}},
		{"gte", []QuerySpec{Gte(1)}, []Seq{1, 2, 3}},
		{"lt", []QuerySpec{Lt(2)}, []Seq{0, 1}},
		{"lte", []QuerySpec{Lte(2)}, []Seq{0, 1, 2}},
		{"range", []QuerySpec{Gt(0), Lt(3)}, []Seq{1, 2}},
		{"limit", []QuerySpec{Limit(3)}, []Seq{0, 1, 2}},
		{"limit zero", []QuerySpec{Limit(0)}, nil},
		{"merged", []QuerySpec{MergeQuerySpec(Gte(2), Limit(1))}, []Seq{2}},
		{"past end", []QuerySpec{Gt(10)}, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			qry, err := log.Query(append(tc.specs, SeqWrap(true))...)
			r.NoError(err)

			var got []Seq
			for _, v := range drain(t, qry) {
				sw, ok := v.(SeqWrapper)
				r.True(ok, "got %T", v)
				r.Equal(testEvents[sw.Seq()], *sw.Value().(*testEvent))
				got = append(got, sw.Seq())
			}
			r.Equal(tc.want, got)
		})
	}
}

func TestQuerySpecErrors(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()

	_, err := log.Query(Gt(1), Gte(2))
	r.EqualError(err, "lower bound already set")
	_, err = log.Query(Lt(1), Lte(2))
	r.EqualError(err, "upper bound already set")

	boom := errors.New("boom")
	_, err = log.Query(ErrorQuerySpec(boom))
	r.Equal(boom, err)
}

func TestQueryLive(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()

	qry, err := log.Query(Live(true), Limit(4))
	r.NoError(err)

	errc := make(chan error, 1)
	go func() {
		for _, ev := range testEvents {
			time.Sleep(5 * time.Millisecond)
			if _, err := log.Append(ev); err != nil {
				errc <- err
				return
			}
		}
		errc <- nil
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := range testEvents {
		v, err := qry.Next(ctx)
		r.NoError(err, "event %d", i)
		r.Equal(testEvents[i], *v.(*testEvent))
	}
	r.NoError(<-errc)

	_, err = qry.Next(ctx)
	r.True(luigi.IsEOS(err), "got %v", err)
}

func TestQueryLiveCancel(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()

	qry, err := log.Query(Live(true))
	r.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = qry.Next(ctx)
	r.Equal(context.Canceled, err)
}

func TestQueryLiveClose(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))

	qry, err := log.Query(Live(true))
	r.NoError(err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		log.Close()
	}()

	_, err = qry.Next(context.Background())
	r.Equal(ErrClosed, err)
}

func TestIterate(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()
	fill(t, log, 0)

	var seqs []Seq
	err := log.Iterate(context.Background(), 2, func(seq Seq, v interface{}) error {
		r.Equal(testEvents[seq], *v.(*testEvent))
		seqs = append(seqs, seq)
		return nil
	})
	r.NoError(err)
	r.Equal([]Seq{2, 3}, seqs)

	stop := errors.New("stop")
	n := 0
	err = log.Iterate(context.Background(), SeqEmpty, func(Seq, interface{}) error {
		n++
		return stop
	})
	r.True(errors.Is(err, stop), "got %v", err)
	r.Equal(1, n)
}

func TestQueryAfterClose(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	fill(t, log, 0)

	qry, err := log.Query()
	r.NoError(err)
	_, err = qry.Next(context.Background())
	r.NoError(err)

	r.NoError(log.Close())
	_, err = qry.Next(context.Background())
	r.Equal(ErrClosed, err)
}

func TestQueryPump(t *testing.T) {
	r := require.New(t)
	log := openTestLog(t, filepath.Join(t.TempDir(), "log"))
	defer log.Close()
	fill(t, log, 0)

	qry, err := log.Query(Gt(0), SeqWrap(true))
	r.NoError(err)

	var got []Seq
	sink := luigi.FuncSink(func(ctx context.Context, v interface{}, err error) error {
		if err != nil {
			return nil
		}
		got = append(got, v.(SeqWrapper).Seq())
		return nil
	})
	r.NoError(luigi.Pump(context.Background(), sink, qry))
	r.Equal([]Seq{1, 2, 3}, got)
}
