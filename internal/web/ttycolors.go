// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

var ttyCodes struct {
	green  string
	yellow string
	red    string
	white  string
	reset  string
}

func init() {
	setTTYCodes(terminal.IsTerminal(int(os.Stdout.Fd())))
}

func setTTYCodes(tty bool) {
	ttyCodes.green = ttyBold("32", tty)
	ttyCodes.yellow = ttyBold("33", tty)
	ttyCodes.red = ttyBold("31", tty)
	ttyCodes.white = ttyBold("37", tty)
	ttyCodes.reset = ttyEscape("0", tty)
}

func ttyBold(code string, tty bool) string {
	return ttyEscape("1;"+code, tty)
}

func ttyEscape(code string, tty bool) string {
	if !tty {
		return ""
	}
	return "\x1b[" + code + "m"
}

// Colour for a response status
func statusColor(status int) string {
	switch {
	case status >= 500:
		return ttyCodes.red
	case status >= 400:
		return ttyCodes.yellow
	}
	return ttyCodes.green
}
