// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avoronov/notevault/internal/logger"
	"github.com/avoronov/notevault/internal/remote"
	"github.com/avoronov/notevault/models"
)

// Task is the handle of one background upload. Holding the handle makes
// the ordering guarantee structural: whoever wants to write the same
// object next waits on the previous handle instead of racing it.
type Task struct {
	done chan struct{}
	err  error
}

// Wait blocks until the upload has finished and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Uploader runs mirrored writes in the background while keeping uploads
// of the same object strictly ordered: a page is never uploaded
// concurrently with a still-in-flight prior upload of itself, so a later
// version can never be clobbered by an earlier one. Uploads of distinct
// objects proceed independently.
type Uploader struct {
	store   remote.ObjectStore
	retrier *remote.Retrier
	logger  *logger.Logger

	mu       sync.Mutex
	inflight map[string]*Task
	wg       sync.WaitGroup
}

// NewUploader constructs an Uploader sending objects to store through
// retrier.
func NewUploader(store remote.ObjectStore, retrier *remote.Retrier, log *logger.Logger) *Uploader {
	return &Uploader{
		store:    store,
		retrier:  retrier,
		logger:   log,
		inflight: map[string]*Task{},
	}
}

// Schedule launches a background upload of the page and returns its
// handle. If a previous upload of the same object is still in flight,
// the new one starts only after it completes (the explicit join point).
// page.Data must not be mutated after the call.
func (u *Uploader) Schedule(ctx context.Context, page models.Page) *Task {
	key := page.Folder + "/" + page.Name
	taskID := uuid.NewString()

	t := &Task{done: make(chan struct{})}

	u.mu.Lock()
	prev := u.inflight[key]
	u.inflight[key] = t
	u.wg.Add(1)
	u.mu.Unlock()

	go func() {
		defer u.wg.Done()

		if prev != nil {
			<-prev.done
		}

		t.err = u.retrier.Do(ctx, func() error {
			return u.store.Put(ctx, page.Name, page.Folder, page.Data)
		})

		u.mu.Lock()
		if u.inflight[key] == t {
			delete(u.inflight, key)
		}
		u.mu.Unlock()

		if t.err != nil {
			u.logger.Error().
				Err(t.err).
				Str("task", taskID).
				Str("object", key).
				Msg("background upload failed")
		} else {
			u.logger.Debug().
				Str("task", taskID).
				Str("object", key).
				Msg("background upload finished")
		}

		close(t.done)
	}()

	return t
}

// Pending returns the in-flight task for folder/name, or nil when no
// upload of that object is running.
func (u *Uploader) Pending(name, folder string) *Task {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.inflight[folder+"/"+name]
}

// Close drains all in-flight uploads.
func (u *Uploader) Close() {
	u.wg.Wait()
}
