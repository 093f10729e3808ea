package bot

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/medzapis/talon-bot/internal/model"
)

// stage tags what the conversation is waiting for.
type stage int

const (
	stageIdle stage = iota

	// registration, strictly ordered
	stageFirstName
	stageLastName
	stagePatronymic
	stagePolicy
	stagePassport

	// booking
	stageCategory
	stageHospital
	stageDoctor
	stageDay
	stageHour
	stageConfirm

	// cancellation
	stageCancelSelect
	stageCancelConfirm
)

// session is the per-conversation scratch state: the current stage plus the
// identifiers picked so far. It lives only until the booking is confirmed,
// aborted or the TTL expires.
type session struct {
	Stage    stage
	Profile  model.Profile
	Category string
	Hospital int64
	DoctorID int64
	Day      time.Time
	Hour     int
	CancelID int64
}

type sessionStore struct {
	c *cache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &sessionStore{
		c: cache.New(ttl, 2*ttl),
	}
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// get returns the chat's session, creating an idle one if absent or expired.
func (s *sessionStore) get(chatID int64) *session {
	if v, ok := s.c.Get(sessionKey(chatID)); ok {
		return v.(*session)
	}
	st := &session{Stage: stageIdle}
	s.c.SetDefault(sessionKey(chatID), st)
	return st
}

// save refreshes the TTL after a mutation.
func (s *sessionStore) save(chatID int64, st *session) {
	s.c.SetDefault(sessionKey(chatID), st)
}

func (s *sessionStore) reset(chatID int64) {
	s.c.Delete(sessionKey(chatID))
}
