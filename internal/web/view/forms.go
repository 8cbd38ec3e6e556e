package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/domain"
)

// FormErrors maps a field namespace to its validation failure. A non-field
// error lives under the "" key.
type FormErrors map[string]string

func (e FormErrors) message(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// General returns the form-wide error, if any.
func (e FormErrors) General() string {
	return e.message("")
}

// SignInPage renders the login form.
func SignInPage(p Page, email string, errs FormErrors) g.Node {
	return Layout(p, formCard("Sign In",
		generalError(errs),
		textField("Email", "email", "email", email, errs),
		textField("Password", "password", "password", "", errs),
		submitButton("Sign In"),
		h.P(
			h.Class("text-center text-sm"),
			g.Text("No account yet? "),
			h.A(h.Href("/register"), h.Class("text-blue-600 hover:underline"), g.Text("Register here")),
		),
	))
}

// RegisterPage renders the account registration form.
func RegisterPage(p Page, input bcard.RegisterInput, errs FormErrors) g.Node {
	return Layout(p, formCard("Register",
		generalError(errs),
		h.Div(
			h.Class("grid grid-cols-3 gap-2"),
			textField("First name", "firstName", "text", input.Name.First, errs),
			textField("Middle name", "middleName", "text", input.Name.Middle, errs),
			textField("Last name", "lastName", "text", input.Name.Last, errs),
		),
		textField("Email", "email", "email", input.Email, errs),
		textField("Password", "password", "password", "", errs),
		textField("Phone", "phone", "tel", input.Phone, errs),
		addressFields(input.Address, errs),
		textField("Image URL", "imageUrl", "url", input.Image.URL, errs),
		textField("Image description", "imageAlt", "text", input.Image.Alt, errs),
		checkboxField("Business account", "isBusiness", input.IsBusiness),
		submitButton("Create Account"),
	))
}

// CreateCardPage renders the card creation form plus, for admins, the
// existing card list with delete controls.
func CreateCardPage(p Page, input bcard.CardInput, errs FormErrors, cards []domain.Card) g.Node {
	nodes := []g.Node{
		formCard("Create Card",
			generalError(errs),
			textField("Card title", "title", "text", input.Title, errs),
			textField("Subtitle", "subtitle", "text", input.Subtitle, errs),
			textField("Description", "description", "text", input.Description, errs),
			textField("Phone", "phone", "tel", input.Phone, errs),
			textField("Email", "email", "email", input.Email, errs),
			textField("Website", "web", "url", input.Web, errs),
			addressFields(input.Address, errs),
			textField("Image URL", "imageUrl", "url", input.Image.URL, errs),
			textField("Image description", "imageAlt", "text", input.Image.Alt, errs),
			submitButton("Create"),
		),
	}
	if p.IsAdmin && len(cards) > 0 {
		nodes = append(nodes, adminCardList(cards))
	}
	return Layout(p, g.Group(nodes))
}

func adminCardList(cards []domain.Card) g.Node {
	return h.Div(
		h.Class("mx-auto mt-8 max-w-4xl"),
		h.H2(h.Class("mb-4 text-xl font-semibold"), g.Text("All cards")),
		h.Div(
			h.Class("grid grid-cols-1 gap-4 sm:grid-cols-2 lg:grid-cols-3"),
			g.Map(cards, func(card domain.Card) g.Node {
				return h.Div(
					h.Class("rounded-lg bg-white dark:bg-gray-700 p-4 shadow"),
					h.H3(h.Class("text-lg font-bold"), g.Text(card.Title)),
					h.P(h.Class("text-sm"), g.Text(card.Phone)),
					h.P(h.Class("text-sm"), g.Text(card.Address.City)),
					h.Form(
						h.Method("post"), h.Action("/cards/"+card.ID+"/delete"),
						h.Button(
							h.Type("submit"),
							h.Class("mt-4 w-full rounded bg-red-500 px-4 py-2 text-white hover:bg-red-600"),
							g.Text("Delete card"),
						),
					),
				)
			}),
		),
	)
}

func addressFields(a bcard.AddressInput, errs FormErrors) g.Node {
	return h.Div(
		h.Class("grid grid-cols-2 gap-2 md:grid-cols-3"),
		textField("State", "state", "text", a.State, errs),
		textField("Country", "country", "text", a.Country, errs),
		textField("City", "city", "text", a.City, errs),
		textField("Street", "street", "text", a.Street, errs),
		textField("House number", "houseNumber", "text", a.HouseNumber, errs),
		textField("Zip", "zip", "text", a.Zip, errs),
	)
}

func formCard(title string, fields ...g.Node) g.Node {
	children := []g.Node{
		h.Class("space-y-4"),
		h.Method("post"),
		h.H2(h.Class("mb-4 text-xl font-semibold"), g.Text(title)),
	}
	children = append(children, fields...)
	return h.Div(
		h.Class("mx-auto mt-8 max-w-2xl rounded bg-white dark:bg-gray-900 p-6 shadow"),
		h.Form(children...),
	)
}

func textField(label, name, inputType, value string, errs FormErrors) g.Node {
	errMsg := errs.message(name)
	return h.Div(
		h.Label(h.For(name), h.Class("block text-sm font-medium"), g.Text(label)),
		h.Input(
			h.ID(name), h.Name(name), h.Type(inputType), h.Value(value),
			h.Class("w-full rounded border p-2 dark:bg-gray-800"),
		),
		g.If(errMsg != "",
			h.P(h.Class("mt-1 text-sm text-red-500"), g.Text(errMsg)),
		),
	)
}

func checkboxField(label, name string, checked bool) g.Node {
	return h.Label(
		h.Class("flex items-center gap-2"),
		h.Input(h.Type("checkbox"), h.Name(name), h.Value("true"), g.If(checked, h.Checked())),
		h.Span(g.Text(label)),
	)
}

func submitButton(label string) g.Node {
	return h.Button(
		h.Type("submit"),
		h.Class("w-full rounded bg-blue-600 px-4 py-2 text-white hover:bg-blue-700"),
		g.Text(label),
	)
}

func generalError(errs FormErrors) g.Node {
	msg := errs.General()
	return g.If(msg != "",
		h.P(h.Class("rounded bg-red-100 p-3 text-sm text-red-700"), g.Text(msg)),
	)
}
