package i18n

// ListingCopy is the text the browser needs to draw the listing.
type ListingCopy struct {
	Title      string `json:"title"`
	LoadMore   string `json:"loadMore"`
	Loading    string `json:"loading"`
	Empty      string `json:"empty"`
	Author     string `json:"author"`
	Date       string `json:"date"`
	Location   string `json:"location"`
	Categories string `json:"categories"`
	Open       string `json:"open"`
}

// NavCopy labels the top navigation.
type NavCopy struct {
	Home  string
	About string
}

// Listing returns the listing copy for loc.
func Listing(loc Localizer) ListingCopy {
	if loc == nil {
		return ListingCopy{}
	}
	return ListingCopy{
		Title:      loc.Sprintf("web.listing.title"),
		LoadMore:   loc.Sprintf("web.listing.load_more"),
		Loading:    loc.Sprintf("web.listing.loading"),
		Empty:      loc.Sprintf("web.listing.empty"),
		Author:     loc.Sprintf("web.project.author"),
		Date:       loc.Sprintf("web.project.date"),
		Location:   loc.Sprintf("web.project.location"),
		Categories: loc.Sprintf("web.project.categories"),
		Open:       loc.Sprintf("web.project.open"),
	}
}

// Nav returns the navigation copy for loc.
func Nav(loc Localizer) NavCopy {
	if loc == nil {
		return NavCopy{}
	}
	return NavCopy{
		Home:  loc.Sprintf("web.nav.home"),
		About: loc.Sprintf("web.nav.about"),
	}
}

// AboutCopy is the about page text.
type AboutCopy struct {
	Title      string
	Contacts   string
	Paragraphs []string
}

// About returns the about page copy for loc.
func About(loc Localizer) AboutCopy {
	if loc == nil {
		return AboutCopy{}
	}
	return AboutCopy{
		Title:    loc.Sprintf("web.about.title"),
		Contacts: loc.Sprintf("web.about.contacts"),
		Paragraphs: []string{
			loc.Sprintf("web.about.p1"),
			loc.Sprintf("web.about.p2"),
			loc.Sprintf("web.about.p3"),
			loc.Sprintf("web.about.p4"),
		},
	}
}
