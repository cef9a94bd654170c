package listing

import (
	"time"

	"github.com/louisbranch/lastro/internal/project"
)

// Frame is one keyframe of the card entrance.
type Frame struct {
	Opacity  float64 `json:"opacity"`
	XPercent float64 `json:"xPercent"`
}

// Animation describes a from/to tween applied to a batch of elements.
type Animation struct {
	From     Frame         `json:"from"`
	To       Frame         `json:"to"`
	Duration time.Duration `json:"-"`
	Ease     string        `json:"ease"`
}

// DurationSeconds is the tween duration as the browser expects it.
func (a Animation) DurationSeconds() float64 {
	return a.Duration.Seconds()
}

// Entrance fades and slides new cards in from the right.
var Entrance = Animation{
	From:     Frame{Opacity: 0, XPercent: 20},
	To:       Frame{Opacity: 1, XPercent: 0},
	Duration: 1200 * time.Millisecond,
	Ease:     "expo.out",
}

// Element is a rendered card the surface can address.
type Element struct {
	Key   project.Key
	DOMID string
}

// Surface is where the listing is drawn. Implementations must not call back
// into the controller from Render or Lookup.
type Surface interface {
	Render(State)
	Lookup(project.Key) (Element, bool)
}

// Animator receives each batch of newly appended elements exactly once.
type Animator interface {
	Animate(elements []Element, animation Animation)
}

type noopSurface struct{}

func (noopSurface) Render(State)                       {}
func (noopSurface) Lookup(project.Key) (Element, bool) { return Element{}, false }

type noopAnimator struct{}

func (noopAnimator) Animate([]Element, Animation) {}
