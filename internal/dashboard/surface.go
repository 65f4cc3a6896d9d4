package dashboard

import (
	"html/template"
	"strconv"
	"sync"
	"time"
)

// State is the lifecycle position of a surface.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
	StateEmpty   State = "empty"
)

// SurfaceName identifies one independent region of the dashboard.
type SurfaceName string

const (
	SurfaceStocks   SurfaceName = "stocks"
	SurfaceTrending SurfaceName = "trending"
	SurfacePopular  SurfaceName = "popular"
	SurfaceLatest   SurfaceName = "latest"
	SurfaceWeather  SurfaceName = "weather"
	SurfaceUsers    SurfaceName = "users"
	SurfaceCountry  SurfaceName = "country"
	SurfaceQuote    SurfaceName = "quote"
	SurfaceJoke     SurfaceName = "joke"
	SurfaceDogs     SurfaceName = "dogs"
)

// View is an immutable snapshot of a surface.
type View struct {
	Surface    SurfaceName   `json:"surface"`
	State      State         `json:"state"`
	Message    string        `json:"message,omitempty"`
	ErrorKind  Kind          `json:"errorKind,omitempty"`
	Count      int           `json:"count"`
	Generation uint64        `json:"generation"`
	HTML       template.HTML `json:"html,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// CountLabel renders "1 result" / "n results".
func (v View) CountLabel() string {
	if v.Count == 0 {
		return ""
	}
	if v.Count == 1 {
		return "1 result"
	}
	return strconv.Itoa(v.Count) + " results"
}

// Ticket is handed out by Begin and must be presented to commit a result.
type Ticket struct {
	surface    SurfaceName
	generation uint64
}

// Generation returns the request generation the ticket belongs to.
func (t Ticket) Generation() uint64 { return t.generation }

// Surface tracks Idle → Loading → {Success, Error, Empty} for one region.
// Commits carrying an outdated ticket are dropped.
type Surface struct {
	mu   sync.RWMutex
	name SurfaceName
	view View
	now  func() time.Time
}

func NewSurface(name SurfaceName) *Surface {
	return &Surface{
		name: name,
		view: View{Surface: name, State: StateIdle},
		now:  time.Now,
	}
}

// Name returns the surface name.
func (s *Surface) Name() SurfaceName {
	return s.name
}

// View returns the current snapshot.
func (s *Surface) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Begin enters Loading, clearing previous visuals, and returns a ticket for this request.
func (s *Surface) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Generation++
	s.view.State = StateLoading
	s.view.Message = ""
	s.view.ErrorKind = ""
	s.view.HTML = ""
	s.view.Count = 0
	s.view.UpdatedAt = s.now()
	return Ticket{surface: s.name, generation: s.view.Generation}
}

// Succeed replaces the surface content with rendered markup.
// Hooks run inside the commit and only when the ticket is still current.
func (s *Surface) Succeed(t Ticket, html template.HTML, count int, hooks ...func()) (View, error) {
	return s.commit(t, func(v *View) {
		v.State = StateSuccess
		v.HTML = html
		v.Count = count
	}, hooks)
}

// Empty records a present-but-empty result.
func (s *Surface) Empty(t Ticket, message string) (View, error) {
	return s.commit(t, func(v *View) {
		v.State = StateEmpty
		v.Message = message
	}, nil)
}

// Fail shows the error message and clears any results.
func (s *Surface) Fail(t Ticket, err error, hooks ...func()) (View, error) {
	return s.commit(t, func(v *View) {
		v.State = StateError
		v.Message = Message(err)
		v.ErrorKind = KindOf(err)
	}, hooks)
}

func (s *Surface) commit(t Ticket, apply func(v *View), hooks []func()) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.surface != s.name || t.generation != s.view.Generation {
		return s.view, ErrStale
	}
	s.view.Message = ""
	s.view.ErrorKind = ""
	s.view.HTML = ""
	s.view.Count = 0
	apply(&s.view)
	s.view.UpdatedAt = s.now()
	for _, hook := range hooks {
		if hook != nil {
			hook()
		}
	}
	return s.view, nil
}
