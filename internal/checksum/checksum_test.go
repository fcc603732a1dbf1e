package checksum

import "testing"

func TestSum(t *testing.T) {
	got := Sum([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("got = %s, want %s", got, want)
	}
}

func TestJSON_StableForEqualValues(t *testing.T) {
	type ev struct {
		ID    string
		Title string
	}
	a, err := JSON(ev{"1", "x"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := JSON(ev{"1", "x"})
	c, _ := JSON(ev{"1", "y"})
	if a != b || a == c {
		t.Errorf("a=%s b=%s c=%s", a, b, c)
	}
	if _, err := JSON(make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestMatches(t *testing.T) {
	etag := ETag([]byte("feed"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{etag, true},
		{"*", true},
		{`"other", ` + etag, true},
		{"W/" + etag, true},
		{`"other"`, false},
	}
	for _, tt := range tests {
		if got := Matches(tt.header, etag); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
