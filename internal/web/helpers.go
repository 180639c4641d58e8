package web

import "html"

func esc(value string) string {
	return html.EscapeString(value)
}
