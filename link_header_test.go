package githubbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageLinks(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   PageLinks
	}{
		{
			name: "empty header",
			want: PageLinks{},
		},
		{
			name: "first page of a counted collection",
			header: `<https://api.github.com/repos/o/r/issues?page=2>; rel="next", ` +
				`<https://api.github.com/repos/o/r/issues?page=14>; rel="last"`,
			want: PageLinks{
				NextURL:  "https://api.github.com/repos/o/r/issues?page=2",
				LastURL:  "https://api.github.com/repos/o/r/issues?page=14",
				NextPage: 2,
				LastPage: 14,
			},
		},
		{
			name: "middle page carries all four relations",
			header: `<https://api.github.com/repos/o/r/issues?page=4>; rel="next", ` +
				`<https://api.github.com/repos/o/r/issues?page=2>; rel="prev", ` +
				`<https://api.github.com/repos/o/r/issues?page=1>; rel="first", ` +
				`<https://api.github.com/repos/o/r/issues?page=14>; rel="last"`,
			want: PageLinks{
				NextURL:  "https://api.github.com/repos/o/r/issues?page=4",
				PrevURL:  "https://api.github.com/repos/o/r/issues?page=2",
				FirstURL: "https://api.github.com/repos/o/r/issues?page=1",
				LastURL:  "https://api.github.com/repos/o/r/issues?page=14",
				NextPage: 4,
				LastPage: 14,
			},
		},
		{
			name:   "since cursor has no page numbers",
			header: `<https://api.github.com/repositories?since=364>; rel="next"`,
			want: PageLinks{
				NextURL: "https://api.github.com/repositories?since=364",
			},
		},
		{
			name:   "uppercase rel attribute",
			header: `<https://api.github.com/x?page=3>; REL="next"`,
			want: PageLinks{
				NextURL:  "https://api.github.com/x?page=3",
				NextPage: 3,
			},
		},
		{
			name:   "unquoted rel value",
			header: `<https://api.github.com/x?page=3>; rel=next`,
			want: PageLinks{
				NextURL:  "https://api.github.com/x?page=3",
				NextPage: 3,
			},
		},
		{
			name: "malformed segment is skipped",
			header: `garbage without brackets; rel="next", ` +
				`<https://api.github.com/x?page=9>; rel="last"`,
			want: PageLinks{
				LastURL:  "https://api.github.com/x?page=9",
				LastPage: 9,
			},
		},
		{
			name:   "unknown relation is ignored",
			header: `<https://api.github.com/x?page=2>; rel="alternate"`,
			want:   PageLinks{},
		},
		{
			name:   "extra link parameters are tolerated",
			header: `<https://api.github.com/x?page=2>; rel="next"; title="next page"`,
			want: PageLinks{
				NextURL:  "https://api.github.com/x?page=2",
				NextPage: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePageLinks(tt.header))
		})
	}
}

func TestPageLinksHasNext(t *testing.T) {
	assert.False(t, PageLinks{}.HasNext())
	assert.True(t, PageLinks{NextURL: "https://api.github.com/x?page=2"}.HasNext())
}

func TestPageNumberOf(t *testing.T) {
	assert.Equal(t, 7, pageNumberOf("https://api.github.com/x?per_page=100&page=7"))
	assert.Equal(t, 0, pageNumberOf("https://api.github.com/x?since=364"))
	assert.Equal(t, 0, pageNumberOf("https://api.github.com/x?page=abc"))
	assert.Equal(t, 0, pageNumberOf("://not-a-url"))
}
