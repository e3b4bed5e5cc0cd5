package xmldoc

import (
	"errors"
	"testing"

	"github.com/matzehuels/awis/pkg/tree"
)

const sample = `<?xml version="1.0"?>
<aws:UrlInfoResponse xmlns:aws="http://alexa.amazonaws.com/doc/2005-10-05/">
  <aws:Response xmlns:aws="http://awis.amazonaws.com/doc/2005-07-11">
    <aws:TrafficData>
      <aws:DataUrl type="canonical">github.com</aws:DataUrl>
      <aws:Rank>551</aws:Rank>
      <aws:RankByCountry>
        <aws:Country Code="US"><aws:Rank>299</aws:Rank></aws:Country>
        <aws:Country Code="IN"><aws:Rank>224</aws:Rank></aws:Country>
      </aws:RankByCountry>
      <aws:RankByCity>
        <aws:City Code="USCA0638" Name="San Francisco"><aws:Rank>35</aws:Rank></aws:City>
      </aws:RankByCity>
    </aws:TrafficData>
    <aws:Language/>
    <aws:Keywords>   </aws:Keywords>
  </aws:Response>
</aws:UrlInfoResponse>`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	traffic := tree.Retrieve(doc, "UrlInfoResponse", "Response", "TrafficData")
	if traffic.Kind() != tree.Mapping {
		t.Fatalf("TrafficData kind = %v, want mapping", traffic.Kind())
	}

	if rank, _ := tree.Text(tree.Retrieve(traffic, "Rank")); rank != "551" {
		t.Errorf("Rank = %q, want 551", rank)
	}

	dataURL := tree.Retrieve(traffic, "DataUrl")
	if got, _ := tree.Text(dataURL); got != "github.com" {
		t.Errorf("DataUrl text = %q, want github.com", got)
	}
	if got, _ := tree.Text(tree.Retrieve(dataURL, "type")); got != "canonical" {
		t.Errorf("DataUrl type = %q, want canonical", got)
	}

	countries := tree.Retrieve(traffic, "RankByCountry", "Country")
	if countries.Kind() != tree.List || countries.Len() != 2 {
		t.Fatalf("Country = %v with %d items, want list of 2", countries.Kind(), countries.Len())
	}
	second := tree.Items(countries)[1]
	if code, _ := tree.Text(tree.Retrieve(second, "Code")); code != "IN" {
		t.Errorf("second country code = %q, want IN", code)
	}

	city := tree.Retrieve(traffic, "RankByCity", "City")
	if city.Kind() != tree.Mapping {
		t.Errorf("single City kind = %v, want mapping", city.Kind())
	}
	if n := len(tree.Items(city)); n != 1 {
		t.Errorf("Items(City) = %d, want 1", n)
	}
	if name, _ := tree.Text(tree.Retrieve(city, "Name")); name != "San Francisco" {
		t.Errorf("City name = %q, want San Francisco", name)
	}
}

func TestParseEmptyElementsAreAbsent(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	resp := tree.Retrieve(doc, "UrlInfoResponse", "Response")
	for _, key := range []string{"Language", "Keywords"} {
		if n := tree.Retrieve(resp, key); !n.IsAbsent() {
			t.Errorf("%s kind = %v, want absent", key, n.Kind())
		}
	}
}

func TestParseSkipsNamespaceDeclarations(t *testing.T) {
	doc, err := Parse([]byte(`<a:Root xmlns:a="urn:x" xmlns="urn:y"><a:Child>1</a:Child></a:Root>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	root := tree.Retrieve(doc, "Root")
	if keys := root.Keys(); len(keys) != 1 || keys[0] != "Child" {
		t.Errorf("Root keys = %v, want [Child]", keys)
	}
}

func TestParseChildOverridesAttribute(t *testing.T) {
	doc, err := Parse([]byte(`<Root Rank="1"><Rank>2</Rank></Root>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, _ := tree.Text(tree.Retrieve(doc, "Root", "Rank")); got != "2" {
		t.Errorf("Rank = %q, want 2", got)
	}
}

func TestParseMixedContent(t *testing.T) {
	doc, err := Parse([]byte(`<Root lang="en">hello</Root>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	root := tree.Retrieve(doc, "Root")
	if got, _ := tree.Text(root); got != "hello" {
		t.Errorf("Text(Root) = %q, want hello", got)
	}
	if got, _ := tree.Text(tree.Retrieve(root, "lang")); got != "en" {
		t.Errorf("lang = %q, want en", got)
	}
}

func TestParseLatin1(t *testing.T) {
	body := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><Title>Caf`), 0xe9, '<', '/', 'T', 'i', 't', 'l', 'e', '>')
	doc, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, _ := tree.Text(tree.Retrieve(doc, "Title")); got != "Café" {
		t.Errorf("Title = %q, want Café", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"whitespace", "  \n ", ErrEmpty},
		{"not xml", "<html><body>oops</html>", ErrSyntax},
		{"truncated", "<Root><Child>1</Child>", ErrSyntax},
		{"two roots", "<A/><B/>", ErrSyntax},
		{"unknown charset", `<?xml version="1.0" encoding="x-bogus"?><A/>`, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}
