// Package markdown turns content files into metadata plus rendered HTML.
// Bodies are parsed with goldmark and then passed through a fixed sequence of
// tree stages (sanitize, anchor-headings, tag-external-links,
// lazy-image-attributes, highlight-code) before the HTML renderer runs.
package markdown
