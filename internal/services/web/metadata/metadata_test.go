package metadata

import (
	"reflect"
	"testing"
)

func TestSnapshotTagsOrderAndValues(t *testing.T) {
	t.Parallel()

	tags := Defaults().Tags()
	if len(tags) != 15 {
		t.Fatalf("len(tags) = %d, want 15", len(tags))
	}
	want := map[string]string{
		"title":        "LASTRO - O Motor de Busca da MPAGDP",
		"theme-color":  "#080808",
		"og:type":      "website",
		"og:image":     "https://lastro-v2.vercel.app/og-image.jpg",
		"twitter:card": "summary_large_image",
		"twitter:url":  "https://lastro-v2.vercel.app",
	}
	for _, tag := range tags {
		if content, ok := want[tag.Name]; ok && content != tag.Content {
			t.Fatalf("%s = %q, want %q", tag.Name, tag.Content, content)
		}
	}
	if tags[0].Attr != AttrName || tags[5].Attr != AttrProperty || tags[5].Name != "og:type" {
		t.Fatalf("unexpected tag order: %+v", tags[:6])
	}
}

func TestHeadApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	head := &Head{}
	head.Apply(Defaults())
	first := head.Tags()
	title, canonical := head.Title, head.Canonical

	head.Apply(Defaults())
	if !reflect.DeepEqual(first, head.Tags()) {
		t.Fatal("second apply changed tags")
	}
	if head.Title != title || head.Canonical != canonical {
		t.Fatal("second apply changed title or canonical")
	}
	if len(head.Tags()) != 15 {
		t.Fatalf("tags duplicated: %d", len(head.Tags()))
	}
}

func TestHeadApplySupersedesEarlierSnapshot(t *testing.T) {
	t.Parallel()

	about := Defaults().Merge(Snapshot{Title: "Sobre", URL: "https://example.test/about"})
	head := HeadFor(Defaults())
	head.Apply(about)

	if !reflect.DeepEqual(head.Tags(), HeadFor(about).Tags()) {
		t.Fatal("applied head differs from a fresh head for the same snapshot")
	}
	if head.Title != "Sobre" || head.Canonical != "https://example.test/about" {
		t.Fatalf("head = %q %q", head.Title, head.Canonical)
	}
	if got, _ := head.Lookup(AttrProperty, "og:title"); got != "Sobre" {
		t.Fatalf("og:title = %q", got)
	}
}

func TestHeadApplyKeepsForeignTags(t *testing.T) {
	t.Parallel()

	head := &Head{tags: []Tag{{Attr: AttrName, Name: "viewport", Content: "width=device-width"}, {Attr: AttrName, Name: "title", Content: "old"}}}
	head.Apply(Defaults())
	if got, ok := head.Lookup(AttrName, "viewport"); !ok || got != "width=device-width" {
		t.Fatalf("viewport = %q, %v", got, ok)
	}
	if got, _ := head.Lookup(AttrName, "title"); got != Defaults().Title {
		t.Fatalf("title tag = %q", got)
	}
	if len(head.Tags()) != 16 {
		t.Fatalf("len(tags) = %d, want 16", len(head.Tags()))
	}
	if _, ok := head.Lookup(AttrName, "missing"); ok {
		t.Fatal("missing tag should not resolve")
	}
}

func TestMergeIgnoresBlankFields(t *testing.T) {
	t.Parallel()

	got := Defaults().Merge(Snapshot{Title: "  Novo  ", Description: "   "})
	if got.Title != "Novo" {
		t.Fatalf("Title = %q", got.Title)
	}
	if got.Description != Defaults().Description {
		t.Fatalf("Description = %q", got.Description)
	}
}

func TestDefaultRoutes(t *testing.T) {
	t.Parallel()

	routes, err := DefaultRoutes()
	if err != nil {
		t.Fatalf("DefaultRoutes() error = %v", err)
	}
	tests := []struct {
		route string
		title string
		url   string
	}{
		{route: "/", title: Defaults().Title, url: Defaults().URL},
		{route: "", title: Defaults().Title, url: Defaults().URL},
		{route: "/about", title: "Sobre - LASTRO", url: "https://lastro-v2.vercel.app/about"},
		{route: "about/", title: "Sobre - LASTRO", url: "https://lastro-v2.vercel.app/about"},
		{route: "/nowhere", title: Defaults().Title, url: Defaults().URL},
	}
	for _, tc := range tests {
		got := routes.ForRoute(tc.route)
		if got.Title != tc.title || got.URL != tc.url {
			t.Fatalf("ForRoute(%q) = %q %q, want %q %q", tc.route, got.Title, got.URL, tc.title, tc.url)
		}
	}
	if got := routes.ForRoute("/about").Author; got != "LASTRO" {
		t.Fatalf("about author = %q, want inherited default", got)
	}
}

func TestLoadRoutesRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := LoadRoutes([]byte("routes: [\n"), Defaults()); err == nil {
		t.Fatal("expected yaml error")
	}
	dup := []byte("routes:\n  /about: {title: a}\n  about/: {title: b}\n")
	if _, err := LoadRoutes(dup, Defaults()); err == nil {
		t.Fatal("expected duplicate route error")
	}
}

func TestWithBaseURLRebasesCanonicals(t *testing.T) {
	t.Parallel()

	routes, err := DefaultRoutes()
	if err != nil {
		t.Fatalf("DefaultRoutes() error = %v", err)
	}
	rebased := routes.WithBaseURL("http://localhost:8080/")
	if got := rebased.ForRoute("/").URL; got != "http://localhost:8080" {
		t.Fatalf("home url = %q", got)
	}
	if got := rebased.ForRoute("/about").URL; got != "http://localhost:8080/about" {
		t.Fatalf("about url = %q", got)
	}
	if got := rebased.ForRoute("/").Image; got != "http://localhost:8080/og-image.jpg" {
		t.Fatalf("image = %q", got)
	}
	if got := routes.ForRoute("/").URL; got != Defaults().URL {
		t.Fatalf("original routes mutated: %q", got)
	}
	if got := routes.WithBaseURL(" ").ForRoute("/").URL; got != Defaults().URL {
		t.Fatalf("blank base changed url: %q", got)
	}
}
