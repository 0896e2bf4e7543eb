package textutil

import (
	"strings"
	"testing"
	"time"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"nested markup", "<div><ul><li>one</li><li>two</li></ul></div>", "one two"},
		{"script dropped", "<p>keep</p><script>var x = 1;</script><p>this</p>", "keep this"},
		{"style dropped", "<style>p { color: red }</style><p>text</p>", "text"},
		{"whitespace collapsed", "<p>  a \n b  </p>", "a b"},
		{"plain passthrough", "no markup here", "no markup here"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExcerptTruncates(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 200) + "</p>"
	got := Excerpt(long)
	if len([]rune(got)) != 153 {
		t.Fatalf("expected 150 chars plus ellipsis, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected trailing ellipsis, got %q", got)
	}

	short := "<p>brief</p>"
	if got := Excerpt(short); got != "brief" {
		t.Fatalf("short content must not gain an ellipsis: %q", got)
	}
}

func TestFormatLongDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	if got := FormatLongDate(ts); got != "March 5, 2024" {
		t.Fatalf("expected 'March 5, 2024', got %q", got)
	}
}

func TestRewriteDriveLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"shared link",
			"https://drive.google.com/file/d/1AbC_dEf/view?usp=sharing",
			"https://drive.google.com/uc?export=view&id=1AbC_dEf",
		},
		{
			"open link with id param",
			"https://drive.google.com/open?id=xyz123",
			"https://drive.google.com/uc?export=view&id=xyz123",
		},
		{
			"non drive url untouched",
			"https://example.com/image.png",
			"https://example.com/image.png",
		},
		{
			"drive url without file id untouched",
			"https://drive.google.com/drive/my-drive",
			"https://drive.google.com/drive/my-drive",
		},
		{"empty untouched", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteDriveLink(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
