package collector

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  plain   text \n\t here ", "plain text here"},
		{"<p>Fed <b>raises</b> rates</p>", "Fed raises rates"},
		{"AT&amp;T &lt;b&gt;bold&lt;/b&gt;", "AT&T bold"},
		{"a&nbsp;&nbsp;b", "a b"},
		{"<div\nclass=\"x\">多行\n标签</div>", "多行 标签"},
		{"央行&#x5229;率", "央行利率"},
	}
	for _, c := range cases {
		if got := CleanText(c.in); got != c.want {
			t.Fatalf("CleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Fed <b>raises</b> rates</p>",
		"AT&amp;amp;T",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt; ok",
		"  中文   标题　 带全角空格 ",
		"a < b and c > d",
	}
	for _, in := range inputs {
		once := CleanText(in)
		if twice := CleanText(once); twice != once {
			t.Fatalf("CleanText not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
