package classdef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is a parsed class manifest.
type File struct {
	Path    string       `yaml:"-"`
	Mixins  []*MixinDecl `yaml:"mixins,omitempty"`
	Classes []*ClassDecl `yaml:"classes,omitempty"`
}

// ClassDecl is the manifest form of class.Spec. Members and the constructor
// refer to Go functions by their catalog key.
type ClassDecl struct {
	Name          string            `yaml:"name"`
	Extend        string            `yaml:"extend,omitempty"`
	Include       []string          `yaml:"include,omitempty"`
	Properties    []*PropertyDecl   `yaml:"properties,omitempty"`
	Members       map[string]string `yaml:"members,omitempty"`
	Construct     string            `yaml:"construct,omitempty"`
	ForwardStates map[string]bool   `yaml:"forwardStates,omitempty"`
	Comment       string            `yaml:"comment,omitempty"`
	Pos           string            `yaml:"-"`
}

// MixinDecl is the manifest form of class.MixinSpec.
type MixinDecl struct {
	Name       string            `yaml:"name"`
	Properties []*PropertyDecl   `yaml:"properties,omitempty"`
	Members    map[string]string `yaml:"members,omitempty"`
	Pos        string            `yaml:"-"`
}

// PropertyDecl is the manifest form of a property declaration.
type PropertyDecl struct {
	Name     string `yaml:"name"`
	Init     any    `yaml:"init,omitempty"`
	HasInit  bool   `yaml:"-"`
	Nullable *bool  `yaml:"nullable,omitempty"`
	Refine   bool   `yaml:"refine,omitempty"`
	Apply    string `yaml:"apply,omitempty"`
	Event    string `yaml:"event,omitempty"`
	// Check is a built-in check name ("Boolean", "Integer", ...), a catalog
	// key, or "instanceof:<Class>".
	Check string `yaml:"check,omitempty"`
	// Equal is "identical" (default) or "deep".
	Equal   string `yaml:"equal,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

// UnmarshalYAML records whether init was given, so that an explicit
// "init: null" differs from no init at all.
func (p *PropertyDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain PropertyDecl
	if err := strictKeys(value, (*plain)(p)); err != nil {
		return err
	}
	if err := value.Decode((*plain)(p)); err != nil {
		return err
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "init" {
			p.HasInit = true
		}
	}
	return nil
}

// UnmarshalYAML records the declaration line.
func (c *ClassDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain ClassDecl
	if err := strictKeys(value, (*plain)(c)); err != nil {
		return err
	}
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Pos = strconv.Itoa(value.Line)
	return nil
}

// UnmarshalYAML records the declaration line.
func (m *MixinDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain MixinDecl
	if err := strictKeys(value, (*plain)(m)); err != nil {
		return err
	}
	if err := value.Decode((*plain)(m)); err != nil {
		return err
	}
	m.Pos = strconv.Itoa(value.Line)
	return nil
}

// Parse decodes a manifest. Unknown keys are rejected. Declaration
// positions are reported as path:line.
func Parse(path string, data []byte) (*File, error) {
	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("classdef: parse %s: %w", path, err)
	}
	for _, c := range f.Classes {
		c.Pos = path + ":" + c.Pos
	}
	for _, m := range f.Mixins {
		m.Pos = path + ":" + m.Pos
	}
	return f, nil
}

// Marshal encodes f back into manifest form.
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// strictKeys rejects mapping keys that v has no yaml field for. Decoding
// through Node.Decode does not inherit the decoder's KnownFields setting.
func strictKeys(value *yaml.Node, v any) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	t := reflect.TypeOf(v).Elem()
	known := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			known[name] = true
		}
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if k := value.Content[i]; !known[k.Value] {
			return fmt.Errorf("line %d: unknown key %q", k.Line, k.Value)
		}
	}
	return nil
}
