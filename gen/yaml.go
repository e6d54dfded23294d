package gen

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/typeexpr"
)

// Definitions is a YAML document of type declarations.
type Definitions struct {
	Types []TypeDecl `yaml:"types"`
}

// TypeDecl declares exactly one struct or enum.
// Schema defaults to true.
type TypeDecl struct {
	Schema *bool       `yaml:"schema,omitempty"`
	Struct string      `yaml:"struct,omitempty"`
	Enum   string      `yaml:"enum,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
	Cases  []CaseDecl  `yaml:"cases,omitempty"`
	Line   int         `yaml:"-"`
}

// FieldDecl declares a field. An empty name makes the field positional.
type FieldDecl struct {
	Name   string `yaml:"name,omitempty"`
	Type   string `yaml:"type"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// CaseDecl declares an enum case.
type CaseDecl struct {
	Name    string   `yaml:"name"`
	Payload []string `yaml:"payload,omitempty"`
}

// Name returns the declared type name.
func (d TypeDecl) Name() string {
	if d.Struct != "" {
		return d.Struct
	}
	return d.Enum
}

func (d TypeDecl) schema() bool {
	return d.Schema == nil || *d.Schema
}

// StructDef converts the declaration, parsing every field type. Parse
// failures are carried in FieldDef.Err.
func (d TypeDecl) StructDef() StructDef {
	def := StructDef{Name: d.Struct, Schema: d.schema(), Fields: make([]FieldDef, len(d.Fields))}
	for i, f := range d.Fields {
		expr, err := typeexpr.Parse(f.Type)
		def.Fields[i] = FieldDef{Name: f.Name, Type: expr, Hidden: f.Hidden}
		if err != nil {
			def.Fields[i].Err = err
		}
	}
	return def
}

// EnumDef converts the declaration, parsing every payload type.
func (d TypeDecl) EnumDef() EnumDef {
	def := EnumDef{Name: d.Enum, Schema: d.schema(), Cases: make([]CaseDef, len(d.Cases))}
	for i, c := range d.Cases {
		cd := CaseDef{Name: c.Name, Payloads: make([]typeexpr.Expr, 0, len(c.Payload))}
		for _, p := range c.Payload {
			expr, err := typeexpr.Parse(p)
			if err != nil {
				cd.Err = err
				break
			}
			cd.Payloads = append(cd.Payloads, expr)
		}
		def.Cases[i] = cd
	}
	return def
}

// ParseDefs decodes a definitions document. Unknown keys are rejected.
func ParseDefs(data []byte) (*Definitions, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.ParseFailed("type definitions", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var defs Definitions
	if err := dec.Decode(&defs); err != nil && err != io.EOF {
		return nil, errors.ParseFailed("type definitions", err)
	}
	recordLines(&root, &defs)

	for i, d := range defs.Types {
		switch {
		case d.Struct != "" && d.Enum != "":
			return nil, errors.ParseFailed("type definitions",
				fmt.Errorf("line %d: declaration %d names both struct %q and enum %q", d.Line, i, d.Struct, d.Enum))
		case d.Struct == "" && d.Enum == "":
			return nil, errors.ParseFailed("type definitions",
				fmt.Errorf("line %d: declaration %d names neither a struct nor an enum", d.Line, i))
		case d.Struct != "" && len(d.Cases) > 0:
			return nil, errors.ParseFailed("type definitions",
				fmt.Errorf("line %d: struct %q declares cases", d.Line, d.Struct))
		case d.Enum != "" && len(d.Fields) > 0:
			return nil, errors.ParseFailed("type definitions",
				fmt.Errorf("line %d: enum %q declares fields", d.Line, d.Enum))
		}
	}
	return &defs, nil
}

// recordLines copies source line numbers from the node tree onto the
// declarations for error messages.
func recordLines(root *yaml.Node, defs *Definitions) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return
	}
	doc := root.Content[0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "types" {
			continue
		}
		for j, item := range doc.Content[i+1].Content {
			if j < len(defs.Types) {
				defs.Types[j].Line = item.Line
			}
		}
	}
}

// LoadDefs reads and decodes a definitions file.
func LoadDefs(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("read %s", path), err)
	}
	return ParseDefs(data)
}

// Output is the result of generating a whole definitions document.
type Output struct {
	Entries   []*schema.Entry
	Artifacts []Artifact
}

// Generate runs every declaration through the generator. Errors from all
// declarations are collected into one *errors.List.
func (g *Generator) Generate(defs *Definitions) (*Output, error) {
	if defs == nil {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "nil definitions")
	}

	out := &Output{}
	errs := &errors.List{}
	names := make(map[string]bool, len(defs.Types))

	for _, d := range defs.Types {
		name := d.Name()
		if names[name] {
			errs.Add(errors.New(errors.PhaseGenerate, errors.KindDuplicateName).
				Value(name).
				Detail("type %q declared more than once", name).
				Build(), name)
			continue
		}
		names[name] = true

		var (
			entry *schema.Entry
			art   *Artifact
			err   error
		)
		if d.Struct != "" {
			var res *StructResult
			if res, err = g.Struct(d.StructDef()); err == nil {
				entry, art = res.Entry, res.Artifact
			}
		} else {
			var res *EnumResult
			if res, err = g.Enum(d.EnumDef()); err == nil {
				entry, art = res.Entry, res.Artifact
			}
		}
		if err != nil {
			errs.Add(err, name)
			continue
		}

		out.Entries = append(out.Entries, entry)
		if art != nil {
			out.Artifacts = append(out.Artifacts, *art)
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	Logger().Info("generated definitions",
		zap.Int("types", len(out.Entries)),
		zap.Int("artifacts", len(out.Artifacts)))
	return out, nil
}
