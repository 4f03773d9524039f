package slugify

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple title", title: "GopherCon", want: "gophercon"},
		{name: "words joined by hyphens", title: "React Summit 2025", want: "react-summit-2025"},
		{name: "leading and trailing space", title: "  DevOps Days  ", want: "devops-days"},
		{name: "punctuation stripped", title: "AI & ML: The Future!", want: "ai-ml-the-future"},
		{name: "whitespace runs collapse", title: "Cloud\t\tNative   Con", want: "cloud-native-con"},
		{name: "existing hyphens kept single", title: "hands--on workshop", want: "hands-on-workshop"},
		{name: "hyphens around word boundaries", title: "- edge case -", want: "edge-case"},
		{name: "only punctuation", title: "!!!", want: ""},
		{name: "mixed case", title: "KubeCon EU", want: "kubecon-eu"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, Make(tc.title))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	t.Parallel()

	titles := []string{
		"GopherCon 2025",
		"  AI & ML: The Future!  ",
		"hands--on   workshop",
		"Выставка Go", // non-latin letters are stripped
	}

	for _, title := range titles {
		once := Make(title)
		assert.Equal(t, once, Make(once), "slug must be stable under re-derivation: %q", title)
	}
}

func TestMakeCharset(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^$|^[a-z0-9]+(-[a-z0-9]+)*$`)

	titles := []string{
		"GopherCon 2025",
		"AI & ML: The Future!",
		"--weird -- input--",
		"a_b_c",
		"   ",
	}

	for _, title := range titles {
		slug := Make(title)
		assert.Regexp(t, valid, slug, "slug %q from title %q", slug, title)
	}
}
