package metadata

type tagKey struct {
	attr Attribute
	name string
}

// Head is the mutable document head a snapshot is applied to. The zero
// value is an empty head.
type Head struct {
	Title     string
	Canonical string

	tags  []Tag
	index map[tagKey]int
}

// Apply upserts the title, every meta tag and the canonical link from s.
// Applying the same snapshot again leaves the head unchanged.
func (h *Head) Apply(s Snapshot) {
	if h.index == nil {
		h.index = make(map[tagKey]int, len(h.tags))
		for i, tag := range h.tags {
			h.index[tagKey{attr: tag.Attr, name: tag.Name}] = i
		}
	}
	h.Title = s.Title
	for _, tag := range s.Tags() {
		key := tagKey{attr: tag.Attr, name: tag.Name}
		if i, ok := h.index[key]; ok {
			h.tags[i].Content = tag.Content
			continue
		}
		h.index[key] = len(h.tags)
		h.tags = append(h.tags, tag)
	}
	h.Canonical = s.URL
}

// Tags returns a copy of the head's meta tags in insertion order.
func (h *Head) Tags() []Tag {
	out := make([]Tag, len(h.tags))
	copy(out, h.tags)
	return out
}

// Lookup returns the content of one meta tag.
func (h *Head) Lookup(attr Attribute, name string) (string, bool) {
	for _, tag := range h.tags {
		if tag.Attr == attr && tag.Name == name {
			return tag.Content, true
		}
	}
	return "", false
}

// HeadFor returns a fresh head with s applied.
func HeadFor(s Snapshot) *Head {
	h := &Head{}
	h.Apply(s)
	return h
}
