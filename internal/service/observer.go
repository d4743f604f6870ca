package service

import (
	"log"
	"sync"
)

// Observer receives the outcome of every manager operation: either a fresh
// snapshot of models or the error that aborted the operation.
type Observer[T any] interface {
	Updated(models []T)
	Failed(err error)
}

// ObserverFuncs adapts plain functions to Observer. A nil OnFailed logs
// the error and carries on.
type ObserverFuncs[T any] struct {
	OnUpdated func(models []T)
	OnFailed  func(err error)
}

func (f ObserverFuncs[T]) Updated(models []T) {
	if f.OnUpdated != nil {
		f.OnUpdated(models)
	}
}

func (f ObserverFuncs[T]) Failed(err error) {
	if f.OnFailed != nil {
		f.OnFailed(err)
		return
	}
	LogFailure(err)
}

// LogFailure is the default failure behavior.
func LogFailure(err error) {
	log.Printf("Error occurred: %v", err)
}

// Recorder is an Observer that keeps the last outcome it saw. Managers call
// observers synchronously, so a Recorder can be read right after the call
// returns.
type Recorder[T any] struct {
	mu      sync.Mutex
	models  []T
	err     error
	updates int
	fails   int
}

func (r *Recorder[T]) Updated(models []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = models
	r.err = nil
	r.updates++
}

func (r *Recorder[T]) Failed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.fails++
}

// Result returns the last snapshot, or the last error if the most recent
// outcome was a failure.
func (r *Recorder[T]) Result() ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.models, nil
}

// Counts reports how many times each callback fired.
func (r *Recorder[T]) Counts() (updates, fails int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates, r.fails
}
