package author

import "testing"

func TestResolvePrimaryAuthor(t *testing.T) {
	tests := []struct {
		name     string
		artist   string
		fallback string
		want     string
	}{
		{
			name:   "single plain author",
			artist: "Andy Weir",
			want:   "Andy Weir",
		},
		{
			name:   "first non-contributor wins",
			artist: "Jane Doe - translator, John Smith",
			want:   "John Smith",
		},
		{
			name:   "lone contributor falls back to stripped first entry",
			artist: "Jane Doe - translator",
			want:   "Jane Doe",
		},
		{
			name:   "all contributors fall back to stripped first entry",
			artist: "Jane Doe - translator, Bob Roe - foreword",
			want:   "Jane Doe",
		},
		{
			name:     "empty artist substitutes title",
			artist:   "",
			fallback: "Brandon Sanderson",
			want:     "Brandon Sanderson",
		},
		{
			name:   "placeholder artist is discarded",
			artist: "[Unknown Artist]",
			want:   "",
		},
		{
			name:     "both empty",
			artist:   "",
			fallback: "",
			want:     "",
		},
		{
			name:   "co-authors keep the first entry",
			artist: "Terry Pratchett, Neil Gaiman",
			want:   "Terry Pratchett",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePrimaryAuthor(tt.artist, tt.fallback); got != tt.want {
				t.Errorf("ResolvePrimaryAuthor(%q, %q) = %q, want %q",
					tt.artist, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestParseContributor(t *testing.T) {
	bare, tagged := ParseContributor("Jane Doe - translator")
	if bare != "Jane Doe" || !tagged {
		t.Errorf("Expected (Jane Doe, true), got (%q, %v)", bare, tagged)
	}

	bare, tagged = ParseContributor("Andy Weir")
	if bare != "Andy Weir" || tagged {
		t.Errorf("Expected (Andy Weir, false), got (%q, %v)", bare, tagged)
	}

	// The " - " heuristic is known to misparse names that legitimately
	// contain it; this locks in that behavior.
	bare, tagged = ParseContributor("Anna Lee - Smith")
	if bare != "Anna Lee" || !tagged {
		t.Errorf("Expected (Anna Lee, true), got (%q, %v)", bare, tagged)
	}
}

func TestCleanSearchName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses spaced initials", in: "J. R. R. Tolkien", want: "J.R.R. Tolkien"},
		{name: "compact initials unchanged", in: "J.R.R. Tolkien", want: "J.R.R. Tolkien"},
		{name: "strips honorific", in: "Dr. Andy Weir", want: "Andy Weir"},
		{name: "strips honorific without period", in: "Prof Jane Doe", want: "Jane Doe"},
		{name: "plain name unchanged", in: "Brandon Sanderson", want: "Brandon Sanderson"},
		{name: "honorific prefix inside name kept", in: "Drew Hayes", want: "Drew Hayes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSearchName(tt.in); got != tt.want {
				t.Errorf("CleanSearchName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
