package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/view"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// render writes a gomponents node as the HTML response.
func render(c *fiber.Ctx, status int, node g.Node) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return node.Render(c)
}

// buildPage assembles the layout state every view needs from the request.
func buildPage(c *fiber.Ctx, title string) view.Page {
	sess := session.FromContext(c)
	page := view.Page{
		Title:    title,
		Query:    c.Query("q"),
		Dark:     session.DarkModeFromContext(c),
		LoggedIn: sess.IsLoggedIn,
		IsAdmin:  sess.IsAdmin,
	}
	if sess.IsLoggedIn {
		if manager, ok := session.ManagerFromContext(c); ok {
			if user, err := manager.User(c.UserContext()); err == nil && user != nil {
				page.UserName = user.DisplayName()
			}
		}
	}
	return page
}

// formErrors converts a validation failure into per-field messages for the
// form views. Other failures land under the general key.
func formErrors(err error) view.FormErrors {
	clientErr := apperrors.ToClientError(err)
	errs := view.FormErrors{}
	if clientErr.Code == apperrors.CodeValidationFailed && len(clientErr.Details) > 0 {
		for field, detail := range clientErr.Details {
			if msg, ok := detail.(string); ok {
				errs[fieldName(field)] = "invalid value (" + msg + ")"
			}
		}
		return errs
	}
	errs[""] = clientErr.Message
	return errs
}

// formFieldByNamespace translates the struct namespaces validator reports
// into the flat form field names the views render.
var formFieldByNamespace = map[string]string{
	"Name.First":    "firstName",
	"Name.Middle":   "middleName",
	"Name.Last":     "lastName",
	"Image.URL":     "imageUrl",
	"Image.Alt":     "imageAlt",
	"Address.State": "state",
}

// fieldName strips the struct namespace validator reports, e.g.
// "CardInput.Address.City" becomes the form field "city".
func fieldName(namespace string) string {
	for suffix, field := range formFieldByNamespace {
		if strings.HasSuffix(namespace, suffix) {
			return field
		}
	}
	last := namespace
	for i := len(namespace) - 1; i >= 0; i-- {
		if namespace[i] == '.' {
			last = namespace[i+1:]
			break
		}
	}
	if last == "" {
		return namespace
	}
	// Remaining form names are lowerCamel versions of struct fields.
	return lowerFirst(last)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
