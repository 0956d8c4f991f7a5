package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

func TestParseINISections(t *testing.T) {
	text := `
top_level = yes

[server]
host = localhost
port = 8080
secure = true

[client]
retries = 3
ratio = 0.5
`
	v, err := ParseINI(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	keys := v.Object().Keys()
	expected := []string{"top_level", "server", "client"}
	if !reflect.DeepEqual(keys, expected) {
		t.Fatalf("expected %v, got %v", expected, keys)
	}

	// un-sectioned keys stay at the top level, as strings unless inferable
	top, _ := v.Object().Get("top_level")
	if top.Kind() != value.KindString || top.Text() != "yes" {
		t.Errorf("expected top_level as string \"yes\", got %s %v", top.Kind(), top)
	}

	server, _ := v.Object().Get("server")
	if server.Kind() != value.KindObject {
		t.Fatalf("expected section object, got %s", server.Kind())
	}

	port, _ := server.Object().Get("port")
	if port.Kind() != value.KindNumber || port.Number() != 8080 {
		t.Errorf("expected inferred number 8080, got %s %v", port.Kind(), port)
	}

	secure, _ := server.Object().Get("secure")
	if secure.Kind() != value.KindBool || !secure.Bool() {
		t.Errorf("expected inferred bool true, got %s %v", secure.Kind(), secure)
	}

	host, _ := server.Object().Get("host")
	if host.Kind() != value.KindString || host.Text() != "localhost" {
		t.Errorf("expected string localhost, got %v", host)
	}

	client, _ := v.Object().Get("client")
	ratio, _ := client.Object().Get("ratio")
	if ratio.Kind() != value.KindNumber || ratio.Number() != 0.5 {
		t.Errorf("expected inferred 0.5, got %v", ratio)
	}
}

func TestParseINIEmpty(t *testing.T) {
	v, err := ParseINI("")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.Kind() != value.KindObject || v.Object().Len() != 0 {
		t.Errorf("expected empty object, got %v", v)
	}
}

func TestParseINIError(t *testing.T) {
	_, err := ParseINI("[unclosed\nkey = value")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Format != FormatINI {
		t.Errorf("expected ini format, got %s", pe.Format)
	}
}
