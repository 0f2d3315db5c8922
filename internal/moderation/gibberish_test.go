package moderation

import "testing"

func TestIsGibberish(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
		{"keyboard mash consonant run", "sdfghjkl on the street", true},
		{"abrupt casing run", "BROken light on my street corner", true},
		{"short with few words", "bad", true},
		{"short two words", "no way", true},
		{"junk token asdf", "please fix this asdf thing", true},
		{"junk token qwerty", "qwerty report about road", true},
		{"junk token lorem ipsum", "Lorem ipsum dolor sit amet on the road", true},
		{"junk token case-insensitive", "TEST123 street light", true},
		{"normal report", "The street light near the park has been broken for a week", false},
		{"three words not short", "broken light pole", false},
		{"ten chars two words passes length gate", "pipe burst", false},
		{"word with y as vowel", "rhythms of daily traffic are disrupted here", false},
		{"all caps acronym short run", "The TDS level is high in our area", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGibberish(tt.text); got != tt.want {
				t.Errorf("IsGibberish(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
