package domain

// Setting is a site configuration key/value pair.
type Setting struct {
	Key   string
	Value string
}

// DefaultSiteName is used when the site_name setting is unset.
const DefaultSiteName = "Blog CMS"
