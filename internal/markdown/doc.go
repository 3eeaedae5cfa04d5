// Package markdown renders editor previews. It splits front matter from the
// document body, converts the body to HTML with goldmark, and derives a
// display title for the preview pane.
package markdown
