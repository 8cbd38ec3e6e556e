package view

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ErrorPage is the full-page rendition of a failed request.
func ErrorPage(p Page, status int, message string) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mx-auto mt-16 max-w-md rounded-lg bg-white dark:bg-gray-900 p-8 text-center shadow"),
			h.H1(h.Class("mb-2 text-2xl font-bold"), g.Text(strconv.Itoa(status))),
			h.P(h.Class("text-gray-600 dark:text-gray-400"), g.Text(message)),
			h.A(h.Href("/"), h.Class("mt-4 inline-block text-blue-600 hover:underline"), g.Text("Back to home")),
		),
	)
}

// ErrorFragment is swapped into the DOM for failed htmx requests.
func ErrorFragment(message string) g.Node {
	return h.Span(h.Class("text-sm text-red-500"), g.Text(message))
}

// CardUnavailablePage covers missing cards and undecodable card responses.
func CardUnavailablePage(p Page) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mx-auto mt-16 max-w-md rounded-lg bg-white dark:bg-gray-900 p-8 text-center shadow"),
			h.H1(h.Class("mb-2 text-xl font-bold"), g.Text("Card not found")),
			h.P(h.Class("text-gray-600 dark:text-gray-400"), g.Text("We could not load this card's details.")),
			h.A(h.Href("/"), h.Class("mt-4 inline-block text-blue-600 hover:underline"), g.Text("Back to home")),
		),
	)
}
