package xj

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/rules"
	"github.com/xj-format/go-xj/transform"
)

func flat() *config.Config {
	c := config.Default()
	c.Pretty = false
	c.XMLDeclaration = false
	return c
}

func TestXMLToJSON(t *testing.T) {
	got, err := XMLToJSON([]byte(`<user id="7"><name>Ann</name></user>`), flat())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"user":{"@attrs":{"id":"7"},"name":"Ann"}}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONToXML(t *testing.T) {
	got, err := JSONToXML([]byte(`{"user":{"@attrs":{"id":"7"},"name":"Ann"}}`), flat())
	if err != nil {
		t.Fatal(err)
	}
	want := `<user id="7"><name>Ann</name></user>`
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	in := `{"shop":{"item":[{"sku":"a"},{"sku":"b"}],"open":"yes"}}`
	x, err := JSONToXML([]byte(in), flat())
	if err != nil {
		t.Fatal(err)
	}
	back, err := XMLToJSON(x, flat())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, string(back)); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestWithRules(t *testing.T) {
	rm, err := rules.Remove(transform.Element|transform.Attribute, "password")
	if err != nil {
		t.Fatal(err)
	}
	got, err := XMLToJSON([]byte(`<u pw="x"><name>a</name><password>b</password></u>`), flat(), rm)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "password") {
		t.Errorf("password survived: %s", got)
	}
}
