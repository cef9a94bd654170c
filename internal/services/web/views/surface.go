package views

import (
	"sync"

	"github.com/louisbranch/lastro/internal/project"
	"github.com/louisbranch/lastro/internal/services/web/listing"
)

// Card is one record as the browser draws it.
type Card struct {
	Key     string         `json:"key"`
	DOMID   string         `json:"domId"`
	Index   int            `json:"index"`
	Project project.Record `json:"project"`
}

// AnimationBatch names the cards one entrance animation applies to.
type AnimationBatch struct {
	Targets  []string      `json:"targets"`
	From     listing.Frame `json:"from"`
	To       listing.Frame `json:"to"`
	Duration float64       `json:"duration"`
	Ease     string        `json:"ease"`
}

// Update is what the browser has not seen yet: cards appended since the
// last update and the animations queued for them.
type Update struct {
	ViewID        string           `json:"viewId"`
	Cards         []Card           `json:"cards"`
	Total         int              `json:"total"`
	PreviousCount int              `json:"previousCount"`
	IsLoadingMore bool             `json:"isLoadingMore"`
	Animations    []AnimationBatch `json:"animations"`
}

// surface is the server-side stand-in for the browser DOM of one view. Keys
// count as mounted once a render has included them.
type surface struct {
	mu       sync.Mutex
	state    listing.State
	rendered map[project.Key]string
	sent     int
	pending  []AnimationBatch
}

func newSurface() *surface {
	return &surface{rendered: map[project.Key]string{}}
}

func (s *surface) Render(state listing.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	for i := len(s.rendered); i < len(state.Records); i++ {
		key := state.Records.Key(i)
		s.rendered[key] = key.DOMID()
	}
}

func (s *surface) Lookup(key project.Key) (listing.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	domID, ok := s.rendered[key]
	if !ok {
		return listing.Element{}, false
	}
	return listing.Element{Key: key, DOMID: domID}, true
}

func (s *surface) Animate(elements []listing.Element, animation listing.Animation) {
	targets := make([]string, 0, len(elements))
	for _, el := range elements {
		targets = append(targets, el.DOMID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, AnimationBatch{
		Targets:  targets,
		From:     animation.From,
		To:       animation.To,
		Duration: animation.DurationSeconds(),
		Ease:     animation.Ease,
	})
}

// drain returns the cards not yet sent and the queued animations, then
// marks them delivered.
func (s *surface) drain(viewID string) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.state.Records
	cards := make([]Card, 0, max(len(records)-s.sent, 0))
	for i := s.sent; i < len(records); i++ {
		key := records.Key(i)
		cards = append(cards, Card{Key: key.String(), DOMID: key.DOMID(), Index: i, Project: records[i]})
	}
	s.sent = max(s.sent, len(records))
	animations := s.pending
	if animations == nil {
		animations = []AnimationBatch{}
	}
	s.pending = nil
	return Update{
		ViewID:        viewID,
		Cards:         cards,
		Total:         len(records),
		PreviousCount: s.state.PreviousCount,
		IsLoadingMore: s.state.IsLoadingMore,
		Animations:    animations,
	}
}
