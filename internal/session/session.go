// session.go - Client-side state machine for one extraction attempt

package session

import (
	"context"
	"sync"

	"github.com/expenso/expense-extract/internal/extract"
)

// Status is the progress stage of the current extraction attempt.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusAnalyzing Status = "analyzing"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// ProgressEvent is one point in the finite event sequence emitted during an
// attempt, consumed by UI layers.
type ProgressEvent struct {
	Stage   Status `json:"stage"`
	Percent int    `json:"percent"`
}

// Extractor is the gateway seam the session drives.
type Extractor interface {
	Extract(ctx context.Context, imageDataURI string) extract.Result
}

// Session holds the currently selected image and the state of its extraction
// attempt. Selecting a new image invalidates any in-flight attempt: a stale
// completion becomes a no-op, so only the last-selected image's outcome is
// ever reflected (last-selected-image-wins).
type Session struct {
	mu         sync.Mutex
	extractor  Extractor
	status     Status
	result     *extract.Result
	generation uint64
	onProgress func(ProgressEvent)
}

// NewSession creates an idle session. onProgress may be nil.
func NewSession(extractor Extractor, onProgress func(ProgressEvent)) *Session {
	return &Session{
		extractor:  extractor,
		status:     StatusIdle,
		onProgress: onProgress,
	}
}

// Attempt is one extraction attempt bound to the image that started it.
// Running an attempt whose session has since moved on mutates nothing.
type Attempt struct {
	session    *Session
	generation uint64
	image      []byte
	mimeType   string
}

// SelectImage starts a new attempt for the given image, superseding any
// in-flight one. The session returns to a clean pre-upload state.
func (s *Session) SelectImage(image []byte, mimeType string) *Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.status = StatusIdle
	s.result = nil
	return &Attempt{
		session:    s,
		generation: s.generation,
		image:      image,
		mimeType:   mimeType,
	}
}

// Reset clears the session back to idle and invalidates in-flight attempts.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.status = StatusIdle
	s.result = nil
}

// Status returns the current progress stage.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result returns the terminal result of the latest completed attempt, or nil.
func (s *Session) Result() *extract.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Busy reports whether an attempt for the current image is in flight. The UI
// must not trigger a second extraction for the same image while busy; a new
// image selection is always allowed and supersedes the running attempt.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusUploading || s.status == StatusAnalyzing
}

// Run drives the attempt through uploading -> analyzing -> done/failed. It is
// linear and non-branching except for the terminal fork. Safe to call from
// its own goroutine; stale attempts complete silently.
func (a *Attempt) Run(ctx context.Context) {
	s := a.session

	if !s.advance(a.generation, StatusUploading, 10) {
		return
	}
	// Encoding is the first suspension point: the image bytes become the
	// transport representation.
	dataURI := extract.EncodeDataURI(a.mimeType, a.image)
	if !s.advance(a.generation, StatusAnalyzing, 50) {
		return
	}

	// Second suspension point: the network round trip. Cancellation is
	// cooperative - a superseded attempt still runs to completion here, but
	// its result is discarded below.
	result := s.extractor.Extract(ctx, dataURI)

	s.complete(a.generation, result)
}

// advance moves the session to the given stage if the attempt is still
// current. Returns false for stale attempts.
func (s *Session) advance(generation uint64, status Status, percent int) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	s.status = status
	onProgress := s.onProgress
	s.mu.Unlock()

	if onProgress != nil {
		onProgress(ProgressEvent{Stage: status, Percent: percent})
	}
	return true
}

// complete records the terminal result if the attempt is still current.
func (s *Session) complete(generation uint64, result extract.Result) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.result = &result
	if result.Success {
		s.status = StatusDone
	} else {
		s.status = StatusFailed
	}
	status := s.status
	onProgress := s.onProgress
	s.mu.Unlock()

	if onProgress != nil {
		onProgress(ProgressEvent{Stage: status, Percent: 100})
	}
}
