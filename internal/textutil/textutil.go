// Package textutil holds presentation helpers for blog and catalog text:
// plain-text excerpts from editor HTML, human-readable dates, and rewriting
// of shared Google Drive links into direct image URLs.
package textutil

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const excerptLength = 150

// PlainText strips markup from editor HTML and returns the concatenated
// text content. Script and style bodies are dropped.
func PlainText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// Excerpt returns the first 150 characters of the plain text with a trailing
// ellipsis when the text was truncated.
func Excerpt(fragment string) string {
	text := PlainText(fragment)
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength]) + "..."
}

// FormatLongDate renders a timestamp like "January 2, 2006".
func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// RewriteDriveLink converts a shared Google Drive file link into a direct
// image URL. Other URLs pass through unchanged.
func RewriteDriveLink(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host != "drive.google.com" {
		return raw
	}

	fileID := driveFileID(parsed)
	if fileID == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=view&id=" + fileID
}

func driveFileID(u *url.URL) string {
	// Shared links look like /file/d/FILEID/view; direct links carry ?id=.
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" {
			return parts[i+1]
		}
	}
	return u.Query().Get("id")
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style"
}
