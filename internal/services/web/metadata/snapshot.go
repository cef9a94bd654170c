// Package metadata models the per-route document head: title, SEO meta tags
// and the canonical link.
package metadata

import "strings"

// Attribute names the meta attribute that identifies a tag.
type Attribute string

const (
	AttrName     Attribute = "name"
	AttrProperty Attribute = "property"
)

// Tag is one <meta> element.
type Tag struct {
	Attr    Attribute
	Name    string
	Content string
}

// Snapshot is the complete head metadata for one navigable view.
type Snapshot struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	Author      string `yaml:"author"`
	URL         string `yaml:"url"`
	Image       string `yaml:"image"`
	ThemeColor  string `yaml:"theme_color"`
}

// Defaults returns the site-wide metadata.
func Defaults() Snapshot {
	return Snapshot{
		Title:       "LASTRO - O Motor de Busca da MPAGDP",
		Description: "Uma nova forma de explorar música, tradição oral, memória coletiva e património humano.",
		Keywords:    "Lastro, MPAGDP, Inteligência Artificial, Música, Tradição Oral, Memória Coletiva, Património Humano, Cultura Portuguesa",
		Author:      "LASTRO",
		URL:         "https://lastro-v2.vercel.app",
		Image:       "https://lastro-v2.vercel.app/og-image.jpg",
		ThemeColor:  "#080808",
	}
}

// Merge returns s with every non-blank field of override applied.
func (s Snapshot) Merge(override Snapshot) Snapshot {
	pick := func(base, next string) string {
		if strings.TrimSpace(next) == "" {
			return base
		}
		return strings.TrimSpace(next)
	}
	return Snapshot{
		Title:       pick(s.Title, override.Title),
		Description: pick(s.Description, override.Description),
		Keywords:    pick(s.Keywords, override.Keywords),
		Author:      pick(s.Author, override.Author),
		URL:         pick(s.URL, override.URL),
		Image:       pick(s.Image, override.Image),
		ThemeColor:  pick(s.ThemeColor, override.ThemeColor),
	}
}

// Tags returns the ordered meta tags for s. Every snapshot yields the same
// tag set, so applying one always overwrites all of a previous one.
func (s Snapshot) Tags() []Tag {
	return []Tag{
		{Attr: AttrName, Name: "title", Content: s.Title},
		{Attr: AttrName, Name: "description", Content: s.Description},
		{Attr: AttrName, Name: "keywords", Content: s.Keywords},
		{Attr: AttrName, Name: "author", Content: s.Author},
		{Attr: AttrName, Name: "theme-color", Content: s.ThemeColor},

		{Attr: AttrProperty, Name: "og:type", Content: "website"},
		{Attr: AttrProperty, Name: "og:url", Content: s.URL},
		{Attr: AttrProperty, Name: "og:title", Content: s.Title},
		{Attr: AttrProperty, Name: "og:description", Content: s.Description},
		{Attr: AttrProperty, Name: "og:image", Content: s.Image},

		{Attr: AttrProperty, Name: "twitter:card", Content: "summary_large_image"},
		{Attr: AttrProperty, Name: "twitter:url", Content: s.URL},
		{Attr: AttrProperty, Name: "twitter:title", Content: s.Title},
		{Attr: AttrProperty, Name: "twitter:description", Content: s.Description},
		{Attr: AttrProperty, Name: "twitter:image", Content: s.Image},
	}
}
