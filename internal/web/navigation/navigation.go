// Package navigation builds the menu shown on every page.
package navigation

// Page identifiers.
const (
	PageHome     = "home"
	PageSecret   = "secret"
	PageRegister = "register"
	PageLogin    = "login"
	PageLogout   = "logout"
)

// Item represents a single menu link.
type Item struct {
	Page   string
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActivePage string
	PageTitle  string
	LoggedIn   bool
	Items      []Item
}

// NewContext creates the navigation for a page. The menu depends on
// whether a user is logged in.
func NewContext(pageTitle, activePage string, loggedIn bool) *Context {
	c := &Context{
		PageTitle:  pageTitle,
		ActivePage: activePage,
		LoggedIn:   loggedIn,
	}

	c.add(PageHome, "Home", "/")

	if loggedIn {
		c.add(PageSecret, "Secret", "/secret")
		c.add(PageLogout, "Log out", "/logout")
	} else {
		c.add(PageRegister, "Sign up", "/register")
		c.add(PageLogin, "Log in", "/login")
	}

	return c
}

func (c *Context) add(page, title, url string) {
	c.Items = append(c.Items, Item{
		Page:   page,
		Title:  title,
		URL:    url,
		Active: page == c.ActivePage,
	})
}

// IsActive checks if page is the current page.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
