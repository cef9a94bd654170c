package projects

import (
	"time"

	"github.com/louisbranch/lastro/internal/services/catalog/storage"
)

// projectJSON is the wire shape read by the web request layer. The id stays
// numeric and an unknown date is null.
type projectJSON struct {
	ID       int64    `json:"id"`
	Link     string   `json:"link"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Category []string `json:"category"`
	Date     *string  `json:"date"`

	Direction  []string `json:"direction"`
	Sound      []string `json:"sound"`
	Production []string `json:"production"`
	Support    []string `json:"support"`
	Assistance []string `json:"assistance"`
	Research   []string `json:"research"`

	Location    string   `json:"location"`
	Instruments []string `json:"instruments"`
	Keywords    []string `json:"keywords"`
	InfoPool    string   `json:"infoPool"`

	CreatedAt string `json:"created_at"`
}

func toJSON(p storage.Project) projectJSON {
	out := projectJSON{
		ID:          p.ID,
		Link:        p.Link,
		Title:       p.Title,
		Author:      p.Author,
		Category:    nonNil(p.Category),
		Direction:   nonNil(p.Direction),
		Sound:       nonNil(p.Sound),
		Production:  nonNil(p.Production),
		Support:     nonNil(p.Support),
		Assistance:  nonNil(p.Assistance),
		Research:    nonNil(p.Research),
		Location:    p.Location,
		Instruments: nonNil(p.Instruments),
		Keywords:    nonNil(p.Keywords),
		InfoPool:    p.InfoPool,
	}
	if p.Date != "" {
		date := p.Date
		out.Date = &date
	}
	if !p.CreatedAt.IsZero() {
		out.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toJSONList(records []storage.Project) []projectJSON {
	out := make([]projectJSON, 0, len(records))
	for _, record := range records {
		out = append(out, toJSON(record))
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
