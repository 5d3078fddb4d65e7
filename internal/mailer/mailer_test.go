package mailer

import "testing"

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<h1>Title</h1> body <br/>", "Title body"},
		{"no markup at all", "no markup at all"},
		{"  <div>\n  trimmed\n</div>  ", "trimmed"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripTags(tc.in); got != tc.want {
			t.Errorf("StripTags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
