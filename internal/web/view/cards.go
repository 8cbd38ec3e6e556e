package view

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/session"
)

const defaultCardImage = "https://cdn.pixabay.com/photo/2015/04/20/13/26/business-731186_960_720.jpg"

// HomePage renders the card grid, filtered by the active query.
func HomePage(p Page, cards []domain.Card, liked session.LikedSet) g.Node {
	if len(cards) == 0 {
		return Layout(p,
			h.P(h.Class("p-8 text-center text-lg"), g.Text("No cards match the search.")),
		)
	}
	return Layout(p, CardGrid(p, cards, liked))
}

// CardGrid lays the cards out as tiles.
func CardGrid(p Page, cards []domain.Card, liked session.LikedSet) g.Node {
	return h.Div(
		h.Class("flex flex-wrap justify-center gap-6 p-6"),
		g.Map(cards, func(card domain.Card) g.Node {
			return CardTile(p, card, liked.Contains(card.ID))
		}),
	)
}

// CardTile renders one business card summary.
func CardTile(p Page, card domain.Card, liked bool) g.Node {
	return h.Div(
		h.Class("relative w-80 rounded-lg bg-white dark:bg-gray-900 shadow-md"),
		g.If(p.LoggedIn,
			h.Div(h.Class("absolute top-2 right-2 z-10"), LikeButton(card.ID, liked)),
		),
		h.Div(
			h.Class("h-48 w-full overflow-hidden rounded-t-lg"),
			h.Img(
				h.Src(cardImageURL(card)),
				h.Alt(cardImageAlt(card)),
				h.Class("h-full w-full object-cover"),
			),
		),
		h.Div(
			h.Class("flex h-40 flex-col justify-between p-4"),
			h.H5(h.Class("truncate text-xl font-semibold"), g.Text(cardTitle(card))),
			h.P(h.Class("text-sm text-gray-700 dark:text-gray-400"), g.Text("☎ "+orDash(card.Phone))),
			h.P(h.Class("text-sm text-gray-700 dark:text-gray-400"), g.Text("⚐ "+orDash(card.Address.Country))),
			h.A(
				h.Href("/business/"+card.ID),
				h.Class("mt-2 rounded bg-blue-600 px-4 py-2 text-center text-sm text-white hover:bg-blue-700"),
				g.Text("Details"),
			),
		),
	)
}

// LikeButton is the htmx fragment swapped in place on every toggle. The
// affordance disables itself while a request is outstanding so toggles on
// the same card are serialized client-side.
func LikeButton(cardID string, liked bool) g.Node {
	label := "♡"
	class := "text-2xl text-gray-400 hover:text-red-500"
	if liked {
		label = "♥"
		class = "text-2xl text-red-600"
	}
	return h.Button(
		h.Type("button"),
		h.Class(class),
		hx.Post("/cards/"+cardID+"/like"),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "this"),
		g.Text(label),
	)
}

// SignInNotice is the fragment returned when an anonymous visitor tries to
// like a card.
func SignInNotice() g.Node {
	return h.A(
		h.Href("/signin"),
		h.Class("text-sm text-red-500 hover:underline"),
		g.Text("Sign in to like"),
	)
}

// BusinessPage renders the full card detail.
func BusinessPage(p Page, card domain.Card, liked bool) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mx-auto mt-8 max-w-3xl rounded-lg bg-white dark:bg-gray-900 p-8 shadow"),
			h.Div(
				h.Class("flex items-start justify-between"),
				h.H1(h.Class("text-3xl font-bold"), g.Text(card.Title)),
				g.If(p.LoggedIn, LikeButton(card.ID, liked)),
			),
			g.If(card.Subtitle != "",
				h.P(h.Class("mt-1 text-lg text-gray-600 dark:text-gray-400"), g.Text(card.Subtitle)),
			),
			h.Div(
				h.Class("my-4 h-64 w-full overflow-hidden rounded"),
				h.Img(h.Src(cardImageURL(card)), h.Alt(cardImageAlt(card)), h.Class("h-full w-full object-cover")),
			),
			g.If(card.Description != "",
				h.P(h.Class("mb-4 leading-relaxed"), g.Text(card.Description)),
			),
			h.Dl(
				h.Class("grid grid-cols-2 gap-2 text-sm"),
				detail("Phone", card.Phone),
				detail("Email", card.Email),
				detail("Web", card.Web),
				detail("Address", formatAddress(card.Address)),
			),
		),
	)
}

// FavoritesPage renders the liked cards, or the empty-favorites notice.
func FavoritesPage(p Page, cards []domain.Card) g.Node {
	if len(cards) == 0 {
		return Layout(p,
			h.P(h.Class("p-8 text-center text-lg"), g.Text("No favorite cards yet.")),
		)
	}
	liked := session.LikedSet{}
	for _, card := range cards {
		liked.Add(card.ID)
	}
	return Layout(p, CardGrid(p, cards, liked))
}

// SignInRequiredPage is the explicit unauthenticated state for views that
// need a session; deliberately distinct from an empty list.
func SignInRequiredPage(p Page, what string) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mt-10 text-center"),
			h.P(h.Class("text-xl text-red-500"), g.Text("Sign in to view "+what+".")),
			h.A(h.Href("/signin"), h.Class("text-blue-600 hover:underline"), g.Text("Go to sign in")),
		),
	)
}

// BusinessRequiredPage is shown when a personal account opens the card
// editor.
func BusinessRequiredPage(p Page) g.Node {
	return Layout(p,
		h.Div(
			h.Class("mt-10 text-center"),
			h.P(h.Class("text-xl text-red-500"), g.Text("Only business accounts can publish cards.")),
			h.A(h.Href("/register"), h.Class("text-blue-600 hover:underline"), g.Text("Register a business account")),
		),
	)
}

func detail(label, value string) g.Node {
	if value == "" {
		return g.Group(nil)
	}
	return g.Group([]g.Node{
		h.Dt(h.Class("font-semibold"), g.Text(label)),
		h.Dd(g.Text(value)),
	})
}

func formatAddress(a domain.Address) string {
	parts := make([]string, 0, 4)
	if a.Street != "" && a.HouseNumber != "" {
		parts = append(parts, a.Street+" "+a.HouseNumber.String())
	} else if a.Street != "" {
		parts = append(parts, a.Street)
	}
	for _, part := range []string{a.City, a.State, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	result := ""
	for i, part := range parts {
		if i > 0 {
			result += ", "
		}
		result += part
	}
	return result
}

func cardImageURL(card domain.Card) string {
	if card.Image.URL != "" {
		return card.Image.URL
	}
	return defaultCardImage
}

func cardImageAlt(card domain.Card) string {
	if card.Image.Alt != "" {
		return card.Image.Alt
	}
	return cardTitle(card)
}

func cardTitle(card domain.Card) string {
	if card.Title == "" {
		return "Untitled card"
	}
	return card.Title
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
