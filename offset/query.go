// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package offset

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
)

// SeqWrapper is returned by queries with SeqWrap(true).
type SeqWrapper interface {
	Seq() Seq
	Value() interface{}
}

type seqWrapper struct {
	seq Seq
	v   interface{}
}

func (sw *seqWrapper) Seq() Seq           { return sw.seq }
func (sw *seqWrapper) Value() interface{} { return sw.v }

func WrapWithSeq(v interface{}, seq Seq) SeqWrapper {
	return &seqWrapper{seq: seq, v: v}
}

// Query reads a range of the log. It is a luigi.Source that ends with
// luigi.EOS.
type Query struct {
	l   sync.Mutex
	log *Log

	nextSeq, lt Seq

	limit   int
	live    bool
	seqWrap bool
}

var _ luigi.Source = (*Query)(nil)

// QuerySpec configures a query.
type QuerySpec func(*Query) error

func MergeQuerySpec(spec ...QuerySpec) QuerySpec {
	return func(qry *Query) error {
		for _, f := range spec {
			if err := f(qry); err != nil {
				return err
			}
		}
		return nil
	}
}

func ErrorQuerySpec(err error) QuerySpec {
	return func(*Query) error {
		return err
	}
}

// Gt starts after s.
func Gt(s Seq) QuerySpec {
	return func(qry *Query) error {
		if qry.nextSeq > SeqEmpty {
			return errors.Errorf("lower bound already set")
		}
		qry.nextSeq = s + 1
		return nil
	}
}

// Gte starts at s.
func Gte(s Seq) QuerySpec {
	return func(qry *Query) error {
		if qry.nextSeq > SeqEmpty {
			return errors.Errorf("lower bound already set")
		}
		qry.nextSeq = s
		return nil
	}
}

// Lt stops before s.
func Lt(s Seq) QuerySpec {
	return func(qry *Query) error {
		if qry.lt != SeqEmpty {
			return errors.Errorf("upper bound already set")
		}
		qry.lt = s
		return nil
	}
}

// Lte stops after s.
func Lte(s Seq) QuerySpec {
	return func(qry *Query) error {
		if qry.lt != SeqEmpty {
			return errors.Errorf("upper bound already set")
		}
		qry.lt = s + 1
		return nil
	}
}

// Limit returns at most n values.
func Limit(n int) QuerySpec {
	return func(qry *Query) error {
		qry.limit = n
		return nil
	}
}

// Live makes Next wait for new values instead of returning luigi.EOS.
func Live(live bool) QuerySpec {
	return func(qry *Query) error {
		qry.live = live
		return nil
	}
}

// SeqWrap makes Next return SeqWrappers.
func SeqWrap(wrap bool) QuerySpec {
	return func(qry *Query) error {
		qry.seqWrap = wrap
		return nil
	}
}

func (log *Log) Query(specs ...QuerySpec) (*Query, error) {
	qry := &Query{
		log: log,

		nextSeq: SeqEmpty,
		lt:      SeqEmpty,

		limit: -1, //i.e. no limit
	}

	for _, spec := range specs {
		if err := spec(qry); err != nil {
			return nil, err
		}
	}
	if qry.nextSeq < 0 {
		qry.nextSeq = 0
	}
	return qry, nil
}

// Next returns the next value of the query, luigi.EOS once it is exhausted
// and ErrClosed after the log was closed.
func (qry *Query) Next(ctx context.Context) (interface{}, error) {
	qry.l.Lock()
	defer qry.l.Unlock()

	if qry.log.isClosed() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if qry.limit == 0 {
		return nil, luigi.EOS{}
	}
	if qry.lt != SeqEmpty && qry.nextSeq >= qry.lt {
		return nil, luigi.EOS{}
	}

	cur, err := qry.log.currentSeq()
	if err != nil {
		return nil, err
	}
	if qry.nextSeq > cur {
		if !qry.live {
			return nil, luigi.EOS{}
		}
		if err := qry.log.waitFor(ctx, qry.nextSeq); err != nil {
			return nil, err
		}
	}

	v, err := qry.log.readFrame(qry.nextSeq)
	if err != nil {
		if qry.log.isClosed() {
			return nil, ErrClosed
		}
		return nil, errors.Wrap(err, "error reading next frame")
	}

	seq := qry.nextSeq
	qry.nextSeq++
	if qry.limit > 0 {
		qry.limit--
	}

	if qry.seqWrap {
		return WrapWithSeq(v, seq), nil
	}
	return v, nil
}
