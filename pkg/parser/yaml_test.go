package parser

import (
	"errors"
	"testing"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

func TestParseYAMLMapping(t *testing.T) {
	text := `
name: web
port: 8080
ratio: 0.5
debug: true
tag: null
hosts:
  - alpha
  - beta
`
	v, err := ParseYAML(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	obj := v.Object()
	keys := obj.Keys()
	expected := []string{"name", "port", "ratio", "debug", "tag", "hosts"}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected key order %v, got %v", expected, keys)
		}
	}

	port, _ := obj.Get("port")
	if port.Kind() != value.KindNumber || port.Number() != 8080 {
		t.Errorf("expected port as Number 8080, got %v", port)
	}

	ratio, _ := obj.Get("ratio")
	if ratio.Number() != 0.5 {
		t.Errorf("expected ratio 0.5, got %v", ratio.Number())
	}

	hosts, _ := obj.Get("hosts")
	if hosts.Kind() != value.KindArray || len(hosts.Array()) != 2 {
		t.Errorf("expected two hosts, got %v", hosts)
	}
}

func TestParseYAMLAnchors(t *testing.T) {
	text := `
base: &base
  retries: 3
job:
  <<: *base
  config: *base
`
	v, err := ParseYAML(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	job, _ := v.Object().Get("job")
	config, ok := job.Object().Get("config")
	if !ok {
		t.Fatal("expected job.config from alias")
	}
	retries, ok := config.Object().Get("retries")
	if !ok || retries.Number() != 3 {
		t.Errorf("expected aliased retries 3, got %v", retries)
	}
}

func TestParseYAMLEmptyDocument(t *testing.T) {
	v, err := ParseYAML("")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.Kind() != value.KindNull {
		t.Errorf("expected Null for empty document, got %s", v.Kind())
	}
}

func TestParseYAMLErrorPosition(t *testing.T) {
	_, err := ParseYAML("a: 1\n  bad indent: [\n")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Format != FormatYAML {
		t.Errorf("expected yaml format, got %s", pe.Format)
	}
}

func TestParseYAMLScalarForms(t *testing.T) {
	v, err := ParseYAML("hex: 0x1F\nquoted: \"8080\"\nplain: 8080")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	hex, _ := v.Object().Get("hex")
	if hex.Kind() != value.KindNumber || hex.Number() != 31 {
		t.Errorf("expected hex 31, got %v", hex)
	}

	quoted, _ := v.Object().Get("quoted")
	if quoted.Kind() != value.KindString || quoted.Text() != "8080" {
		t.Errorf("expected quoted string, got %s %v", quoted.Kind(), quoted)
	}

	plain, _ := v.Object().Get("plain")
	if plain.Kind() != value.KindNumber {
		t.Errorf("expected plain number, got %s", plain.Kind())
	}
}
