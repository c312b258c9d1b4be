package classify

import (
	"sync"

	"voicedrive-go/errcode"
)

// Scripted plays back a programmed sequence of results. It stands in for
// the real inference engine on host builds and in tests.
type Scripted struct {
	Input   int      // required window length in samples
	Results []Result // consumed in order
	Loop    bool     // wrap instead of failing when exhausted
	Fail    error    // returned once the script runs out (when not looping)

	mu    sync.Mutex
	i     int
	calls int
}

func (s *Scripted) InputLength() int { return s.Input }

func (s *Scripted) Classify(_ Signal) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.i >= len(s.Results) {
		if s.Loop && len(s.Results) > 0 {
			s.i = 0
		} else if s.Fail != nil {
			return Result{}, s.Fail
		} else {
			return Result{}, errcode.ClassifierFault
		}
	}
	r := s.Results[s.i]
	s.i++
	return r, nil
}

// Calls reports how many blocks have been classified so far.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
