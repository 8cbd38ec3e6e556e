package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Page carries the per-request state every layout render needs.
type Page struct {
	Title    string
	Query    string
	Dark     bool
	LoggedIn bool
	IsAdmin  bool
	UserName string
}

// Layout renders the shared document shell: nav bar with search, auth-aware
// links and the dark mode toggle.
func Layout(p Page, body ...g.Node) g.Node {
	htmlClass := ""
	if p.Dark {
		htmlClass = "dark"
	}

	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			g.If(htmlClass != "", h.Class(htmlClass)),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(pageTitle(p.Title))),
				h.Script(h.Src("https://unpkg.com/htmx.org@1.9.12")),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(g.Raw("tailwind.config = {darkMode: 'class'};")),
			),
			h.Body(
				h.Class("min-h-screen bg-emerald-100 dark:bg-gray-800 text-gray-900 dark:text-gray-100"),
				navBar(p),
				h.Main(g.Group(body)),
				footer(),
			),
		),
	)
}

func pageTitle(title string) string {
	if title == "" {
		return "BCard"
	}
	return title + " - BCard"
}

func navBar(p Page) g.Node {
	return h.Nav(
		h.Class("flex flex-wrap items-center gap-4 bg-white dark:bg-gray-900 px-6 py-3 shadow"),
		h.A(h.Href("/"), h.Class("text-xl font-bold"), g.Text("BCard")),
		h.Form(
			h.Method("get"), h.Action("/"),
			h.Class("flex-1 max-w-md"),
			h.Input(
				h.Type("search"), h.Name("q"), h.Value(p.Query),
				h.Placeholder("Search cards..."),
				h.Class("w-full rounded border px-3 py-1 dark:bg-gray-800"),
			),
		),
		h.A(h.Href("/about"), navLinkClass(), g.Text("About")),
		g.If(p.LoggedIn,
			g.Group([]g.Node{
				h.A(h.Href("/favorites"), navLinkClass(), g.Text("Favorites")),
				h.A(h.Href("/create-card"), navLinkClass(), g.Text("Create Card")),
			}),
		),
		g.If(!p.LoggedIn,
			g.Group([]g.Node{
				h.A(h.Href("/signin"), navLinkClass(), g.Text("Sign In")),
				h.A(h.Href("/register"), navLinkClass(), g.Text("Register")),
			}),
		),
		g.If(p.LoggedIn,
			h.Form(
				h.Method("post"), h.Action("/logout"),
				h.Class("inline"),
				h.Button(h.Type("submit"), navLinkClass(), g.Text("Sign Out ("+p.UserName+")")),
			),
		),
		h.Form(
			h.Method("post"), h.Action("/prefs/darkmode"),
			h.Class("inline"),
			h.Button(h.Type("submit"), navLinkClass(), g.Text(darkModeLabel(p.Dark))),
		),
	)
}

func darkModeLabel(dark bool) string {
	if dark {
		return "Light"
	}
	return "Dark"
}

func navLinkClass() g.Node {
	return h.Class("text-sm text-blue-600 dark:text-blue-400 hover:underline")
}

func footer() g.Node {
	return h.Footer(
		h.Class("mt-8 p-4 text-center text-xs text-gray-500"),
		g.Text("BCard business directory"),
	)
}

// AboutPage is a static description of the portal.
func AboutPage(p Page) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mx-auto max-w-2xl p-8 bg-white dark:bg-gray-900 rounded-lg shadow mt-8"),
			h.H1(h.Class("text-2xl font-bold mb-4"), g.Text("About BCard")),
			h.P(h.Class("leading-relaxed"),
				g.Text("BCard lists digital business cards from a shared directory. "+
					"Browse and search without an account; sign in to mark favorites, "+
					"and register a business account to publish cards of your own."),
			),
		),
	)
}
