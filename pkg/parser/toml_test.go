package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

func TestParseTOMLDocumentOrder(t *testing.T) {
	text := `
title = "example"
debug = true

[server]
host = "localhost"
port = 8080
timeout = 2.5

[client]
retries = 3
`
	v, err := ParseTOML(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	keys := v.Object().Keys()
	expected := []string{"title", "debug", "server", "client"}
	if !reflect.DeepEqual(keys, expected) {
		t.Fatalf("expected document order %v, got %v", expected, keys)
	}

	server, _ := v.Object().Get("server")
	serverKeys := server.Object().Keys()
	if !reflect.DeepEqual(serverKeys, []string{"host", "port", "timeout"}) {
		t.Errorf("expected server key order [host port timeout], got %v", serverKeys)
	}

	port, _ := server.Object().Get("port")
	if port.Kind() != value.KindNumber || port.Number() != 8080 {
		t.Errorf("expected integer port as Number 8080, got %v", port)
	}

	timeout, _ := server.Object().Get("timeout")
	if timeout.Number() != 2.5 {
		t.Errorf("expected float timeout 2.5, got %v", timeout.Number())
	}
}

func TestParseTOMLArrayOfTables(t *testing.T) {
	text := `
[[servers]]
name = "alpha"
port = 1

[[servers]]
name = "beta"
port = 2
`
	v, err := ParseTOML(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	servers, _ := v.Object().Get("servers")
	if servers.Kind() != value.KindArray {
		t.Fatalf("expected array of tables, got %s", servers.Kind())
	}
	if len(servers.Array()) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(servers.Array()))
	}

	beta := servers.Array()[1]
	name, _ := beta.Object().Get("name")
	if name.Text() != "beta" {
		t.Errorf("expected second server beta, got %v", name)
	}
}

func TestParseTOMLInlineValues(t *testing.T) {
	v, err := ParseTOML(`point = { x = 1, y = 2 }
list = [1, "two", 3.5]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	list, _ := v.Object().Get("list")
	if len(list.Array()) != 3 {
		t.Fatalf("expected 3 list items, got %d", len(list.Array()))
	}
	if list.Array()[1].Text() != "two" {
		t.Errorf("expected mixed array to keep strings, got %v", list.Array()[1])
	}

	point, _ := v.Object().Get("point")
	if point.Kind() != value.KindObject || point.Object().Len() != 2 {
		t.Errorf("expected inline table with 2 keys, got %v", point)
	}
}

func TestParseTOMLSyntaxError(t *testing.T) {
	_, err := ParseTOML("a = \nb = 1")
	if err == nil {
		t.Fatal("expected syntax error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Format != FormatTOML {
		t.Errorf("expected toml format, got %s", pe.Format)
	}
	if pe.Line != 1 {
		t.Errorf("expected error on line 1, got %d", pe.Line)
	}
}
