package service

import "fmt"

// PersistenceError wraps a failure reported by the store. It is the only
// error kind the managers emit. The store's error stays in the chain, so
// errors.Is(err, repository.ErrNotFound) works on it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
