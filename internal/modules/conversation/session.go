package conversation

import (
	"sync"

	channelDomain "github.com/reshetovitsme/devradar/internal/modules/channel/domain"
)

// Session is the per-chat conversation state. All access goes through the
// session mutex, so one chat is handled by one goroutine at a time.
type Session struct {
	mu sync.Mutex

	State     State
	WordCount int
	Pending   *channelDomain.Channel
}

// moveTo switches to the given state after validating the transition.
func (s *Session) moveTo(to State) error {
	if err := checkTransition(s.State, to); err != nil {
		return err
	}
	s.State = to
	return nil
}

// reset drops all in-progress data and returns the session to idle.
func (s *Session) reset() {
	s.State = StateIdle
	s.WordCount = 0
	s.Pending = nil
}
