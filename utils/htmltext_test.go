package utils

import "testing"

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Andheri Sports Complex", "Andheri Sports Complex"},
		{"block separation", "<div>Badminton</div><div>Cricket</div>", "Badminton Cricket"},
		{"list items", "<ul><li>Parking</li><li>Washroom</li><li>Drinking Water</li></ul>", "Parking Washroom Drinking Water"},
		{"nested blocks", "<div><p>Open daily</p><p>6 AM to 11 PM</p></div>", "Open daily 6 AM to 11 PM"},
		{"inline stays joined", "<span>4.</span><span>5</span>", "4.5"},
		{"line breaks", "Ground Floor<br>MG Road<br>Pune", "Ground Floor MG Road Pune"},
		{"whitespace collapse", "  Turf \n\n  7  ", "Turf 7"},
		{"script dropped", "<div>Rules</div><script>window.x = 1;</script>", "Rules"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		if got := FlattenHTML(tt.in); got != tt.want {
			t.Errorf("%s: FlattenHTML(%q) = %q; want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a  b  ", "a b"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"\n \t ", ""},
		{"single", "single"},
	}

	for _, tt := range tests {
		if got := CollapseSpace(tt.in); got != tt.want {
			t.Errorf("CollapseSpace(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
