package service

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"lemmyharvest/internal/services/harvest/domain"
)

// item is one hand-off between producer and consumer
type item struct {
	rec domain.Record
	err error
}

// stream is the pull side of one invocation. The channel is unbuffered so
// the producer advances exactly one unit of work per pull and pauses
// between pulls; Close cancels the producer context and every in-flight
// network call tears down with it
type stream struct {
	ch     chan item
	cancel context.CancelFunc
	once   sync.Once

	emitted    atomic.Int64
	duplicates atomic.Int64
}

func newStream(cancel context.CancelFunc) *stream {
	return &stream{ch: make(chan item), cancel: cancel}
}

// Next blocks for the next record. It returns io.EOF once the stream is
// exhausted; a fatal traversal error is returned once, then io.EOF
func (st *stream) Next() (domain.Record, error) {
	it, ok := <-st.ch
	if !ok {
		return domain.Record{}, io.EOF
	}
	if it.err != nil {
		return domain.Record{}, it.err
	}
	return it.rec, nil
}

// Close abandons the stream. Safe to call more than once and after EOF
func (st *stream) Close() error {
	st.once.Do(st.cancel)
	return nil
}

// Stats returns the emitted count and duplicate-id skip count so far
func (st *stream) Stats() (emitted int, duplicates int) {
	return int(st.emitted.Load()), int(st.duplicates.Load())
}

// send hands rec to the consumer, or reports false when the invocation
// context is gone (consumer closed, deadline, parent cancel)
func (st *stream) send(ctx context.Context, rec domain.Record) bool {
	select {
	case st.ch <- item{rec: rec}:
		st.emitted.Add(1)
		return true
	case <-ctx.Done():
		return false
	}
}

// fail delivers a terminal error if the consumer is still pulling
func (st *stream) fail(ctx context.Context, err error) {
	select {
	case st.ch <- item{err: err}:
	case <-ctx.Done():
	}
}
