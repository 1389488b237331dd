package ratings

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonahtballard/CatBase/internal/models"
)

// State is the lifecycle of one instructor's rating badge
type State int

const (
	StateIdle    State = iota // not requested yet
	StateLoading              // lookup in flight
	StateLoaded               // settled with a profile, possibly empty
	StateError                // settled with a failure
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "idle"
}

// ErrInvalidTransition is returned for a state change the badge lifecycle forbids
var ErrInvalidTransition = errors.New("invalid badge transition")

// transitions lists the legal moves. Loading only ever settles; loaded and
// error are terminal for the session.
var transitions = map[State][]State{
	StateIdle:    {StateLoading, StateLoaded, StateError},
	StateLoading: {StateLoaded, StateError},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

const (
	textLoading     = "Loading ratings…"
	textUnavailable = "Ratings unavailable"
	textNoData      = "No rating data"
	absent          = "—"
)

// Badge is what the UI shows for one instructor
type Badge struct {
	State   State
	Profile *models.RatingProfile
	Err     error
}

// Text renders the badge for the detail view
func (b Badge) Text() string {
	switch b.State {
	case StateLoading:
		return textLoading
	case StateError:
		return textUnavailable
	case StateLoaded:
		if b.Profile.IsEmpty() {
			return textNoData
		}
		s := FormatStats(b.Profile)
		return fmt.Sprintf("★ %s · %s ratings · difficulty %s · %s would take again",
			s.Rating, s.Count, s.Difficulty, s.WouldTakeAgain)
	}
	return ""
}

// Short renders the badge for a table cell
func (b Badge) Short() string {
	switch b.State {
	case StateLoading:
		return "…"
	case StateError:
		return "unavailable"
	case StateLoaded:
		if b.Profile.IsEmpty() {
			return "no data"
		}
		s := FormatStats(b.Profile)
		return fmt.Sprintf("%s (%s)", s.Rating, s.Count)
	}
	return ""
}

// Stats are the four display fields of a profile, "—" where absent
type Stats struct {
	Rating         string // one decimal
	Count          string
	Difficulty     string // one decimal
	WouldTakeAgain string // whole percent
}

// FormatStats formats the profile's stats for display
func FormatStats(p *models.RatingProfile) Stats {
	s := Stats{Rating: absent, Count: absent, Difficulty: absent, WouldTakeAgain: absent}
	if p == nil {
		return s
	}
	if p.AvgRating != nil {
		s.Rating = fmt.Sprintf("%.1f", *p.AvgRating)
	}
	if p.NumRatings != nil {
		s.Count = fmt.Sprintf("%d", *p.NumRatings)
	}
	if p.Difficulty != nil {
		s.Difficulty = fmt.Sprintf("%.1f", *p.Difficulty)
	}
	if p.WouldTakeAgain != nil {
		s.WouldTakeAgain = fmt.Sprintf("%d%%", int(math.Round(*p.WouldTakeAgain)))
	}
	return s
}

// Tracker keeps the badge state of every instructor a view has shown. It is
// driven from the TUI update loop and is not safe for concurrent use.
type Tracker struct {
	badges map[string]Badge
}

// NewTracker creates a tracker with every identity idle
func NewTracker() *Tracker {
	return &Tracker{badges: make(map[string]Badge)}
}

// Badge returns the badge for key (idle if never requested)
func (t *Tracker) Badge(key string) Badge {
	return t.badges[key]
}

func (t *Tracker) move(key string, next Badge) error {
	cur := t.badges[key].State
	if !canTransition(cur, next.State) {
		return fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, cur, next.State, key)
	}
	t.badges[key] = next
	return nil
}

// Hit settles an idle badge straight from a cache entry, without loading
func (t *Tracker) Hit(key string, e Entry) error {
	if cur := t.badges[key].State; cur != StateIdle {
		return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, key, cur)
	}
	return t.move(key, settled(e.Profile, e.Err))
}

// Load marks an idle badge as loading
func (t *Tracker) Load(key string) error {
	return t.move(key, Badge{State: StateLoading})
}

// Settle finishes a loading badge with the lookup outcome
func (t *Tracker) Settle(key string, profile *models.RatingProfile, err error) error {
	if t.badges[key].State != StateLoading {
		return fmt.Errorf("%w: %s is not loading", ErrInvalidTransition, key)
	}
	return t.move(key, settled(profile, err))
}

func settled(profile *models.RatingProfile, err error) Badge {
	if err != nil {
		return Badge{State: StateError, Err: err}
	}
	if profile == nil {
		profile = &models.RatingProfile{}
	}
	return Badge{State: StateLoaded, Profile: profile}
}
