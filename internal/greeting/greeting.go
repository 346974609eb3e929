// Package greeting serves the team greeting pages.
package greeting

import (
	"fmt"

	"github.com/agilisium/greeter/internal/web"
)

const (
	RootPath  = "/"
	HelloPath = "/hello/<name>"

	rootPage = "<p>Hello, Welcome to Agilisium Devops Team :) :)!</p>"
	// name is interpolated as is
	helloTemplate = "<h1>Hello, Welcome to Agilisium Devops Team %s!</h1>"
)

// Static greeting page
func Root() string {
	return rootPage
}

// Personal greeting page. The name is reflected into the HTML without
// escaping, so markup in it is rendered by the browser.
// TODO: decide with the team whether to html.EscapeString the name; today a
// crafted link can inject script into the page.
func Hello(name string) string {
	return fmt.Sprintf(helloTemplate, name)
}

// Register both greeting pages on s
func Register(s *web.Server) error {
	if err := s.Get(RootPath, Root); err != nil {
		return err
	}
	return s.Get(HelloPath, Hello)
}
