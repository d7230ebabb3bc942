package platform

import "sync"

// Recorder is an in-memory Target. It keeps every record it accepts and can
// be told to fail, which makes it the usual test double for a host log.
type Recorder struct {
	mu      sync.Mutex
	records []Record
	fail    error
}

func NewRecorder() *Recorder { return &Recorder{} }

// Write stores r, or returns the configured failure without storing it.
func (r *Recorder) Write(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.records = append(r.records, rec)
	return nil
}

// FailWith makes subsequent writes return err; nil restores normal behavior.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}

func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}
