// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"context"

	"github.com/skratchdot/open-golang/open"
)

// Opens a URL in the user's browser. Replaceable for tests.
var openBrowser = open.Start

// Serve on addr like Run, and point the desktop browser at the application
// once the socket is listening. Failing to launch a browser is logged, not
// fatal.
func (s *Server) RunApp(ctx context.Context, addr string) error {
	l, err := s.Listen(addr)
	if err != nil {
		return err
	}
	url := s.URL(l)
	s.Logger.Printf("Launching browser: %s", url)
	if err := openBrowser(url); err != nil {
		s.Logger.Printf("Could not launch browser: %v", err)
	}
	return s.Serve(ctx, l)
}
