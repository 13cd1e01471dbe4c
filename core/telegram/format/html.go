// Package format escapes user-supplied text for Telegram parse modes.
package format

import "html"

// EscapeHTML escapes user-supplied text for Telegram HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}
