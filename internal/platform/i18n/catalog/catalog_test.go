package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if got := bundle.Locales(); !slices.Equal(got, []string{"en-US", "pt-PT"}) {
		t.Fatalf("Locales() = %v", got)
	}
	if got := bundle.namespaces[BaseLocale]; !slices.Equal(got, []string{"core", "web"}) {
		t.Fatalf("base namespaces = %v", got)
	}
	if got, _ := bundle.Message("pt-PT", "web.listing.load_more"); got != "Ver mais projetos" {
		t.Fatalf("load_more = %q", got)
	}
	if got, _ := bundle.Message("pt-PT", "web.listing.loading"); got != "A carregar mais..." {
		t.Fatalf("loading = %q", got)
	}
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.locales[BaseLocale]
	for _, locale := range bundle.Locales() {
		messages := bundle.locales[locale]
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("locale %s missing key %q", locale, key)
			}
		}
		if len(messages) != len(base) {
			t.Fatalf("locale %s has %d keys, base has %d", locale, len(messages), len(base))
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/web.yaml"), `locale: "pt-PT"
namespace: "web"
messages:
  "core.bad": "não"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/core.yaml"), `locale: "pt-PT"
namespace: "core"
messages:
  "core.good": "ok"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/core.yaml"), `locale: "pt-PT"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/web.yaml"), `locale: "pt-PT"
namespace: "web"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsMismatchedLocaleAndMissingBase(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "a"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}

	otherDir := t.TempDir()
	mustWriteFile(t, filepath.Join(otherDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "a"
`)
	if _, err := LoadFromFS(os.DirFS(otherDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestLoadFromFSRejectsMalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-PT/web.yaml"), "locale: [\n")
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("fr-FR", "web.nav.about")
	if !ok || got != "Sobre" {
		t.Fatalf("Message(fr-FR) = %q, %v", got, ok)
	}
	if _, ok := bundle.Message("pt-PT", " "); ok {
		t.Fatal("blank key should not resolve")
	}
}

func TestDefaultRegistersWithXText(t *testing.T) {
	Default()
	printer := message.NewPrinter(language.MustParse("en-US"))
	if got := printer.Sprintf("web.listing.load_more"); got != "See more projects" {
		t.Fatalf("en-US printer = %q", got)
	}
	printer = message.NewPrinter(language.Portuguese)
	if got := printer.Sprintf("web.listing.load_more"); got != "Ver mais projetos" {
		t.Fatalf("pt printer = %q", got)
	}
}

func TestTagsStartWithBaseLocale(t *testing.T) {
	tags := Default().Tags()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	if len(names) != 2 || names[0] != BaseLocale {
		t.Fatalf("Tags() = %v", names)
	}
	if !slices.Contains(names, "en-US") {
		t.Fatalf("Tags() missing en-US: %v", names)
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
