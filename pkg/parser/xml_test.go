package parser

import (
	"errors"
	"testing"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

func TestParseXMLElementConvention(t *testing.T) {
	text := `<?xml version="1.0"?>
<config env="prod">
  <name>web</name>
  <server>
    <host>alpha</host>
  </server>
  <server>
    <host>beta</host>
  </server>
</config>`

	v, err := ParseXML(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	config, ok := v.Object().Get("config")
	if !ok {
		t.Fatal("expected root key config")
	}

	// attributes land under @-prefixed keys
	env, ok := config.Object().Get("@env")
	if !ok || env.Text() != "prod" {
		t.Errorf("expected @env=prod, got %v", env)
	}

	// text-only elements collapse to strings
	name, _ := config.Object().Get("name")
	if name.Kind() != value.KindString || name.Text() != "web" {
		t.Errorf("expected name as string, got %s %v", name.Kind(), name)
	}

	// repeated tags always collapse into an array
	servers, _ := config.Object().Get("server")
	if servers.Kind() != value.KindArray {
		t.Fatalf("expected repeated server tag as array, got %s", servers.Kind())
	}
	if len(servers.Array()) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(servers.Array()))
	}
	host, _ := servers.Array()[1].Object().Get("host")
	if host.Text() != "beta" {
		t.Errorf("expected second host beta, got %v", host)
	}
}

func TestParseXMLMixedContent(t *testing.T) {
	v, err := ParseXML(`<note lang="en">hello <b>world</b></note>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	note, _ := v.Object().Get("note")
	text, ok := note.Object().Get("#text")
	if !ok || text.Text() != "hello" {
		t.Errorf("expected #text hello, got %v", text)
	}
	b, ok := note.Object().Get("b")
	if !ok || b.Text() != "world" {
		t.Errorf("expected child b=world, got %v", b)
	}
}

func TestParseXMLEmptyElement(t *testing.T) {
	v, err := ParseXML(`<root><empty/></root>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	root, _ := v.Object().Get("root")
	empty, ok := root.Object().Get("empty")
	if !ok || empty.Kind() != value.KindString || empty.Text() != "" {
		t.Errorf("expected empty element as empty string, got %v", empty)
	}
}

func TestParseXMLNoRoot(t *testing.T) {
	if _, err := ParseXML("  \n<!-- just a comment -->\n"); err == nil {
		t.Error("expected error for document without a root element")
	}
}

func TestParseXMLSyntaxError(t *testing.T) {
	_, err := ParseXML("<a>\n<b>\n</a>")
	if err == nil {
		t.Fatal("expected syntax error for mismatched tags")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Format != FormatXML {
		t.Errorf("expected xml format, got %s", pe.Format)
	}
	if pe.Line == 0 {
		t.Error("expected a line number in the XML error")
	}
}
