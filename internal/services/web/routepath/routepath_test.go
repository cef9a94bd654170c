package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if About != "/about" {
		t.Fatalf("About = %q", About)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if Listings != "/api/listings" {
		t.Fatalf("Listings = %q", Listings)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := Listing(" abc "); got != "/api/listings/abc" {
		t.Fatalf("Listing() = %q", got)
	}
	if got := ListingMore("abc"); got != "/api/listings/abc/more" {
		t.Fatalf("ListingMore() = %q", got)
	}
	if got := Project("a/b"); got != "/api/projects/a%2Fb" {
		t.Fatalf("Project() = %q", got)
	}
}
