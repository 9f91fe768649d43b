package theme

// Assets is the set of theme-dependent icons and classes used by the
// public page.
type Assets struct {
	RootClass  string // added to <html>
	ToggleIcon string // sun in dark mode, moon in light mode
	Instagram  string
	LinkedIn   string
	GitHub     string
}

// AssetsFor returns the asset set for t.
func AssetsFor(t Theme) Assets {
	if t == Dark {
		return Assets{
			RootClass:  "dark",
			ToggleIcon: "/static/icons/sun.svg",
			Instagram:  "/static/icons/instagram-dark.svg",
			LinkedIn:   "/static/icons/linkedin-dark.svg",
			GitHub:     "/static/icons/github-dark.svg",
		}
	}
	return Assets{
		RootClass:  "",
		ToggleIcon: "/static/icons/moon.svg",
		Instagram:  "/static/icons/instagram-light.svg",
		LinkedIn:   "/static/icons/linkedin-light.svg",
		GitHub:     "/static/icons/github-light.svg",
	}
}
