package gen

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/symbol"
	"github.com/wippyai/contractgen/typeexpr"
)

// Generator builds schema descriptors from definitions.
// A Generator is safe for concurrent use.
type Generator struct {
	symbols  *symbol.Table
	resolver typeexpr.Resolver
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxDepth bounds type nesting. Values above schema.MaxDepth are clamped.
func WithMaxDepth(n int) Option {
	return func(g *Generator) {
		g.resolver.MaxDepth = n
	}
}

// WithSymbols shares a symbol table between generators.
func WithSymbols(t *symbol.Table) Option {
	return func(g *Generator) {
		if t != nil {
			g.symbols = t
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{symbols: symbol.NewTable()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Symbols returns the generator's symbol table.
func (g *Generator) Symbols() *symbol.Table {
	return g.symbols
}

// Struct validates and resolves def. On failure the returned error is an
// *errors.List holding every problem found.
func (g *Generator) Struct(def StructDef) (*StructResult, error) {
	errs := &errors.List{Type: def.Name}
	if err := symbol.CheckName(def.Name, schema.MaxNameLen); err != nil {
		errs.Add(err)
	}

	desc := &schema.Struct{Name: def.Name, Fields: make([]schema.Field, 0, len(def.Fields))}
	resolved := make([]ResolvedField, 0, len(def.Fields))
	seen := make(map[symbol.Symbol]string)

	position := 0
	for i, f := range def.Fields {
		if f.Hidden {
			continue
		}
		ident := f.Name
		if ident == "" {
			ident = strconv.Itoa(position)
		}
		position++

		if f.Err != nil {
			errs.Add(f.Err, ident)
			continue
		}

		valid := true
		name, err := g.symbols.Intern(ident)
		if err != nil {
			errs.Add(err, ident)
			valid = false
		} else if prev, dup := seen[name]; dup {
			errs.Add(errors.New(errors.PhaseGenerate, errors.KindDuplicateName).
				Value(ident).
				Detail("field identifier %q repeats field %q", ident, prev).
				Build(), ident)
			valid = false
		} else {
			seen[name] = ident
		}

		t, err := g.resolver.Resolve(f.Type)
		if err != nil {
			errs.Add(err, ident)
			continue
		}
		if !valid {
			continue
		}

		desc.Fields = append(desc.Fields, schema.Field{Name: name, Type: t})
		resolved = append(resolved, ResolvedField{Source: i, Name: name, Type: t})
	}

	if err := errs.Err(); err != nil {
		Logger().Debug("struct generation failed",
			zap.String("type", def.Name),
			zap.Int("errors", errs.Len()))
		return nil, err
	}

	res := &StructResult{
		Descriptor: desc,
		Entry:      schema.StructEntry(desc),
		Fields:     resolved,
	}
	if def.Schema {
		art, err := artifactOf(res.Entry)
		if err != nil {
			return nil, err
		}
		res.Artifact = art
	}

	Logger().Debug("generated struct",
		zap.String("type", def.Name),
		zap.Int("fields", len(resolved)),
		zap.Bool("schema", def.Schema))
	return res, nil
}

// Enum validates and resolves def. Cases with more than one payload are
// rejected with unsupported_variant_shape. Duplicate case identifiers are
// accepted; the first declared case wins on decode.
func (g *Generator) Enum(def EnumDef) (*EnumResult, error) {
	errs := &errors.List{Type: def.Name}
	if err := symbol.CheckName(def.Name, schema.MaxNameLen); err != nil {
		errs.Add(err)
	}

	desc := &schema.Union{Name: def.Name, Cases: make([]schema.Case, 0, len(def.Cases))}
	resolved := make([]ResolvedCase, 0, len(def.Cases))
	seen := make(map[symbol.Symbol]bool)

	for i, c := range def.Cases {
		if c.Err != nil {
			errs.Add(c.Err, c.Name)
			continue
		}

		name, nameErr := g.symbols.Intern(c.Name)
		if nameErr != nil {
			errs.Add(nameErr, c.Name)
		}

		var payload *schema.TypeDef
		switch len(c.Payloads) {
		case 0:
		case 1:
			t, err := g.resolver.Resolve(c.Payloads[0])
			if err != nil {
				errs.Add(err, c.Name)
				continue
			}
			payload = &t
		default:
			errs.Add(errors.UnsupportedVariantShape(nil, c.Name, len(c.Payloads)), c.Name)
			continue
		}
		if nameErr != nil {
			continue
		}

		shadowed := seen[name]
		if shadowed {
			Logger().Debug("case shadowed by earlier case with the same identifier",
				zap.String("type", def.Name),
				zap.String("case", c.Name),
				zap.Int("index", i))
		}
		seen[name] = true

		desc.Cases = append(desc.Cases, schema.Case{Name: name, Payload: payload})
		resolved = append(resolved, ResolvedCase{Source: i, Name: name, Payload: payload, Shadowed: shadowed})
	}

	if err := errs.Err(); err != nil {
		Logger().Debug("enum generation failed",
			zap.String("type", def.Name),
			zap.Int("errors", errs.Len()))
		return nil, err
	}

	res := &EnumResult{
		Descriptor: desc,
		Entry:      schema.UnionEntry(desc),
		Cases:      resolved,
	}
	if def.Schema {
		art, err := artifactOf(res.Entry)
		if err != nil {
			return nil, err
		}
		res.Artifact = art
	}

	Logger().Debug("generated enum",
		zap.String("type", def.Name),
		zap.Int("cases", len(resolved)),
		zap.Bool("schema", def.Schema))
	return res, nil
}

func artifactOf(e *schema.Entry) (*Artifact, error) {
	data, err := schema.Marshal(e)
	if err != nil {
		return nil, err
	}
	return &Artifact{Name: schema.ArtifactName(e.Name()), Data: data}, nil
}
