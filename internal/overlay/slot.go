package overlay

import "sync"

// frameSlot holds the newest finished frame. Frames from transitions older
// than the stored one are dropped, so a slow render can never overwrite the
// result of a later input.
type frameSlot struct {
	mu    sync.RWMutex
	frame *Frame
	err   error
	seq   uint64
	set   bool
}

// offer stores f if it is newer than the current content. The commit hook
// runs under the slot lock when f is accepted and may veto it.
func (s *frameSlot) offer(f *Frame, commit func(*Frame) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set && f.Seq < s.seq {
		return false, nil
	}
	if commit != nil {
		if err := commit(f); err != nil {
			s.fail(f.Seq, err)
			return false, err
		}
	}
	s.frame, s.err, s.seq, s.set = f, nil, f.Seq, true
	return true, nil
}

// reject records the failure of transition seq unless a newer result exists.
func (s *frameSlot) reject(seq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set && seq < s.seq {
		return
	}
	s.fail(seq, err)
}

func (s *frameSlot) fail(seq uint64, err error) {
	s.err, s.seq, s.set = err, seq, true
}

// newer reports whether a result newer than seq is stored.
func (s *frameSlot) newer(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set && s.seq > seq
}

// load returns the newest frame and the error of the newest transition, if it
// failed.
func (s *frameSlot) load() (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.err
}
