package model

import "testing"

func TestParseSelector_Invalid(t *testing.T) {
	for _, s := range []string{"", "div[", "#", ".", "div > p", "[=x]"} {
		if _, err := ParseSelector(s); err == nil {
			t.Errorf("ParseSelector(%q) should fail", s)
		}
	}
}

func TestPage_Query(t *testing.T) {
	p := loadFixtures(t)
	tests := []struct {
		selector string
		want     []string
	}{
		{"#block", []string{"2"}},
		{"span", []string{"5", "6"}},
		{".note", []string{"3", "12"}},
		{"div.note.hidden", []string{"3"}},
		{"[display=none]", []string{"3", "11"}},
		{"[display='none']", []string{"3", "11"}},
		{"p[data-visible]", []string{"12"}},
		{"section, span", []string{"5", "6", "11"}},
		{"12", []string{"12"}},
		{"article", nil},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			refs, err := p.Query(tt.selector)
			if err != nil {
				t.Fatal(err)
			}
			if len(refs) != len(tt.want) {
				t.Fatalf("got %v, want %v", refs, tt.want)
			}
			for i, r := range refs {
				if r.Ref != tt.want[i] {
					t.Errorf("ref %d: got %s, want %s", i, r.Ref, tt.want[i])
				}
			}
		})
	}
}

func TestPage_QueryAll(t *testing.T) {
	p := loadFixtures(t)
	refs, err := p.Query("*")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 12 {
		t.Errorf("expected 12 elements, got %d", len(refs))
	}
}

func TestPage_QueryQuotedValues(t *testing.T) {
	p := &Page{Elements: []Element{{
		Tag: "body",
		Children: []Element{
			{Tag: "div", Attrs: map[string]string{"data-test": "a,b"}},
			{Tag: "div", Attrs: map[string]string{"data-test": "x]y"}},
			{Tag: "span", Attrs: map[string]string{"title": "it's"}},
		},
	}}}
	p.Number()

	tests := []struct {
		selector string
		want     []string
	}{
		{`[data-test="a,b"]`, []string{"2"}},
		{`[data-test='a,b'], span`, []string{"2", "4"}},
		{`div[data-test="x]y"]`, []string{"3"}},
		{`[title="it's"]`, []string{"4"}},
		{`[data-test="a"], [data-test="b"]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			refs, err := p.Query(tt.selector)
			if err != nil {
				t.Fatal(err)
			}
			if len(refs) != len(tt.want) {
				t.Fatalf("got %v, want %v", refs, tt.want)
			}
			for i, r := range refs {
				if r.Ref != tt.want[i] {
					t.Errorf("ref %d: got %s, want %s", i, r.Ref, tt.want[i])
				}
			}
		})
	}

	if _, err := ParseSelector(`[data-test="a,b]`); err == nil {
		t.Error("unterminated quote should fail")
	}
}
