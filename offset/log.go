// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

// Package offset is an append-only record file. Every value is encoded with
// a codec and stored in a frame of fixed size, so the n-th value starts at
// n*framesize.
package offset // import "github.com/ssbc/serialize/offset"

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"go.uber.org/zap"

	"github.com/ssbc/serialize/codec"
	"github.com/ssbc/serialize/framing/basic"
)

// DefaultFrameSize is the default frame size.
const DefaultFrameSize = 4096

// Seq is the position of a value in the log, starting at 0.
type Seq int64

// SeqEmpty is the sequence of a log without values.
const SeqEmpty Seq = -1

var (
	ErrOutOfBounds = errors.New("offset: sequence out of bounds")
	ErrClosed      = errors.New("offset: log closed")
)

// Log is safe for concurrent use.
type Log struct {
	l       sync.Mutex
	f       *os.File
	seq     luigi.Observable
	closing chan struct{}
	closed  bool

	codec   codec.Codec
	framing basic.Framing
	logger  *zap.Logger
}

type Option func(*Log)

// WithLogger sets the logger, the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(log *Log) {
		log.logger = l
	}
}

// Open opens or creates the log file at path.
func Open(path string, framing basic.Framing, cdc codec.Codec, opts ...Option) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	log, err := New(f, framing, cdc, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return log, nil
}

// New returns a log over f. The current sequence is derived from the size of f.
func New(f *os.File, framing basic.Framing, cdc codec.Codec, opts ...Option) (*Log, error) {
	log := &Log{
		f:       f,
		closing: make(chan struct{}),
		codec:   cdc,
		framing: framing,
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(log)
	}

	// get current sequence by end / blocksize
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seek to end of log file")
	}

	size := framing.FrameSize()
	if rest := end % size; rest != 0 {
		// the next append overwrites the partial frame
		log.logger.Warn("log file ends in a partial frame",
			zap.String("file", f.Name()),
			zap.Int64("bytes", rest))
	}
	cur := Seq(end/size) - 1
	log.seq = luigi.NewObservable(cur)

	log.logger.Debug("opened log",
		zap.String("file", f.Name()),
		zap.Int64("seq", int64(cur)))
	return log, nil
}

// Seq returns an observable of the sequence of the last value. It holds
// SeqEmpty while the log has no values.
func (log *Log) Seq() luigi.Observable {
	return log.seq
}

func (log *Log) currentSeq() (Seq, error) {
	v, err := log.seq.Value()
	if err != nil {
		return SeqEmpty, errors.Wrap(err, "error reading current sequence")
	}
	cur, ok := v.(Seq)
	if !ok {
		return SeqEmpty, errors.Errorf("offset: sequence observable holds %T", v)
	}
	return cur, nil
}

func (log *Log) isClosed() bool {
	log.l.Lock()
	defer log.l.Unlock()
	return log.closed
}

func (log *Log) FileName() string {
	return log.f.Name()
}

// Append stores v and returns its sequence.
func (log *Log) Append(v interface{}) (Seq, error) {
	data, err := log.codec.Marshal(v)
	if err != nil {
		return SeqEmpty, errors.Wrap(err, "error marshaling value")
	}

	frame, err := log.framing.EncodeFrame(data)
	if err != nil {
		return SeqEmpty, errors.Wrap(err, "error framing value")
	}

	log.l.Lock()
	defer log.l.Unlock()

	if log.closed {
		return SeqEmpty, ErrClosed
	}

	cur, err := log.currentSeq()
	if err != nil {
		return SeqEmpty, err
	}

	next := cur + 1
	if _, err := log.f.WriteAt(frame, int64(next)*log.framing.FrameSize()); err != nil {
		return SeqEmpty, errors.Wrap(err, "error writing frame")
	}
	return next, errors.Wrap(log.seq.Set(next), "error updating sequence")
}

// Get returns the value stored at seq.
func (log *Log) Get(seq Seq) (interface{}, error) {
	if log.isClosed() {
		return nil, ErrClosed
	}
	cur, err := log.currentSeq()
	if err != nil {
		return nil, err
	}
	if seq < 0 || seq > cur {
		return nil, errors.Wrapf(ErrOutOfBounds, "seq %d, log at %d", seq, cur)
	}
	return log.readFrame(seq)
}

func (log *Log) readFrame(seq Seq) (interface{}, error) {
	size := log.framing.FrameSize()
	buf := make([]byte, size)
	if _, err := log.f.ReadAt(buf, int64(seq)*size); err != nil {
		return nil, errors.Wrapf(err, "error reading frame %d", seq)
	}

	data, err := log.framing.DecodeFrame(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding frame %d", seq)
	}

	v, err := log.codec.Unmarshal(data)
	if err != nil {
		log.logger.Error("undecodable value", zap.Int64("seq", int64(seq)), zap.Error(err))
		return nil, errors.Wrapf(err, "error unmarshaling value %d", seq)
	}
	return v, nil
}

// waitFor blocks until seq was appended, the log closes or ctx is done.
func (log *Log) waitFor(ctx context.Context, seq Seq) error {
	reached := make(chan struct{})
	var once sync.Once
	cancel := log.seq.Register(luigi.FuncSink(func(ctx context.Context, v interface{}, err error) error {
		if err != nil {
			return nil
		}
		if cur, ok := v.(Seq); ok && cur >= seq {
			once.Do(func() { close(reached) })
		}
		return nil
	}))
	defer cancel()

	if cur, err := log.currentSeq(); err != nil {
		return err
	} else if cur >= seq {
		return nil
	}

	select {
	case <-reached:
		return nil
	case <-log.closing:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Iterate calls fn for every value from seq from up to the current end.
// An error from fn stops the iteration and is returned.
func (log *Log) Iterate(ctx context.Context, from Seq, fn func(Seq, interface{}) error) error {
	if from < 0 {
		from = 0
	}
	qry, err := log.Query(Gte(from), SeqWrap(true))
	if err != nil {
		return err
	}

	sink := luigi.FuncSink(func(ctx context.Context, v interface{}, err error) error {
		if err != nil {
			if luigi.IsEOS(err) {
				return nil
			}
			return err
		}
		sw := v.(SeqWrapper)
		return fn(sw.Seq(), sw.Value())
	})
	return luigi.Pump(ctx, sink, qry)
}

// Close wakes up waiting live queries and closes the file.
func (log *Log) Close() error {
	log.l.Lock()
	defer log.l.Unlock()

	if log.closed {
		return nil
	}
	log.closed = true
	close(log.closing)

	return errors.Wrap(log.f.Close(), "error closing log file")
}
