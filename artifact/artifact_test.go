package artifact

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/schema"
)

const defsYAML = `
types:
  - struct: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
  - enum: Shape
    cases:
      - {name: Circle, payload: [i32]}
      - {name: Empty}
  - struct: Scratch
    schema: false
    fields:
      - {type: u64}
`

func generate(t *testing.T) *gen.Output {
	t.Helper()
	defs, err := gen.ParseDefs([]byte(defsYAML))
	if err != nil {
		t.Fatalf("ParseDefs: %v", err)
	}
	out, err := gen.New().Generate(defs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

// customSection encodes a raw custom section.
func customSection(name string, data []byte) []byte {
	body := append([]byte{byte(len(name))}, name...)
	body = append(body, data...)
	return append([]byte{0x00, byte(len(body))}, body...)
}

func TestNewModule(t *testing.T) {
	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(NewModule(), want) {
		t.Errorf("NewModule() = %x", NewModule())
	}
	sections, err := Sections(NewModule())
	if err != nil || len(sections) != 0 {
		t.Errorf("Sections = %v, %v", sections, err)
	}
}

func TestEmbedExtract(t *testing.T) {
	out := generate(t)
	if len(out.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(out.Artifacts))
	}

	module, err := Embed(NewModule(), out.Artifacts)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	ctx := context.Background()
	c, err := Extract(ctx, module)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(c.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(c.Entries))
	}

	// sorted by artifact name
	if c.Artifacts[0].Name != "__SPEC_XDR_POINT" || c.Artifacts[1].Name != "__SPEC_XDR_SHAPE" {
		t.Errorf("artifact order = %s, %s", c.Artifacts[0].Name, c.Artifacts[1].Name)
	}

	for _, a := range out.Artifacts {
		found := false
		for _, got := range c.Artifacts {
			if got.Name == a.Name {
				found = true
				if !bytes.Equal(got.Data, a.Data) {
					t.Errorf("%s: data differs", a.Name)
				}
			}
		}
		if !found {
			t.Errorf("%s missing", a.Name)
		}
	}

	point, ok := c.Entry("Point")
	if !ok || point.Struct == nil || len(point.Struct.Fields) != 2 {
		t.Fatalf("Point entry = %+v", point)
	}
	data, err := schema.Marshal(point)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, c.Artifacts[0].Data) {
		t.Error("re-marshaled Point differs from artifact")
	}
	if _, ok := c.Entry("Scratch"); ok {
		t.Error("Scratch has no schema and must not be embedded")
	}

	read, err := Read(module)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(read.Entries) != len(c.Entries) {
		t.Errorf("Read entries = %d, Extract entries = %d", len(read.Entries), len(c.Entries))
	}
}

func TestEmbedDeterministic(t *testing.T) {
	out := generate(t)
	reversed := []gen.Artifact{out.Artifacts[1], out.Artifacts[0]}

	a, err := Embed(NewModule(), out.Artifacts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Embed(NewModule(), reversed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("embedding must not depend on artifact order")
	}
}

func TestEmbedReplaces(t *testing.T) {
	out := generate(t)
	module := append(NewModule(), customSection("build-id", []byte{1, 2, 3})...)

	first, err := Embed(module, out.Artifacts[:1])
	if err != nil {
		t.Fatal(err)
	}
	second, err := Embed(first, out.Artifacts)
	if err != nil {
		t.Fatal(err)
	}

	sections, err := Sections(second)
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Name != "build-id" || !bytes.Equal(sections[0].Data, []byte{1, 2, 3}) {
		t.Errorf("unrelated section not preserved: %+v", sections[0])
	}
	if sections[1].Name != SectionName {
		t.Errorf("last section = %q", sections[1].Name)
	}

	c, err := Extract(context.Background(), second)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(c.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(c.Entries))
	}
}

func TestExtractWith(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCustomSections(true))
	defer rt.Close(ctx)

	module, err := Embed(NewModule(), generate(t).Artifacts)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := ExtractWith(ctx, rt, module); err != nil {
			t.Fatalf("ExtractWith #%d: %v", i, err)
		}
	}
}

func TestExtractMissingSection(t *testing.T) {
	_, err := Extract(context.Background(), NewModule())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Errorf("expected not found, got %v", err)
	}
	_, err = Read(NewModule())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Errorf("Read: expected not found, got %v", err)
	}
}

func TestExtractInvalidModule(t *testing.T) {
	if _, err := Extract(context.Background(), []byte("not wasm")); err == nil {
		t.Error("expected compile error")
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name   string
		module []byte
	}{
		{"short", []byte{0x00, 0x61}},
		{"magic", []byte{0x00, 0x61, 0x73, 0x6e, 0x01, 0x00, 0x00, 0x00}},
		{"version", []byte{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00}},
		{"truncated section", append(NewModule(), 0x00, 0x05, 0x01)},
		{"missing size", append(NewModule(), 0x00)},
		{"bad custom name", append(NewModule(), 0x00, 0x02, 0x05, 'a')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sections(tt.module)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad}) {
				t.Errorf("expected load error, got %v", err)
			}
			if _, err := Embed(tt.module, nil); err == nil {
				t.Error("Embed should fail too")
			}
		})
	}
}

func TestEncodeSection(t *testing.T) {
	data, err := EncodeSection(nil)
	if err != nil || !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("EncodeSection(nil) = %x, %v", data, err)
	}

	data, err = EncodeSection([]gen.Artifact{{Name: "b", Data: []byte{9}}, {Name: "a"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x01, 'a', 0x00, 0x01, 'b', 0x01, 0x09}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeSection = %x, want %x", data, want)
	}

	_, err = EncodeSection([]gen.Artifact{{Name: "a"}, {Name: "a"}})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindDuplicateName}) {
		t.Errorf("expected duplicate name, got %v", err)
	}
	if _, err = EncodeSection([]gen.Artifact{{}}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestDecodeSectionErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"count too large", []byte{0x05, 0x01, 'a'}},
		{"truncated data", []byte{0x01, 0x01, 'a', 0x04, 0x00}},
		{"duplicate", []byte{0x02, 0x01, 'a', 0x00, 0x01, 'a', 0x00}},
		{"trailing", []byte{0x01, 0x01, 'a', 0x00, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSection(tt.data); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad}) {
				t.Errorf("expected load error, got %v", err)
			}
		})
	}
}

func TestDecodeContractMismatch(t *testing.T) {
	out := generate(t)
	renamed := []gen.Artifact{{Name: "__SPEC_XDR_OTHER", Data: out.Artifacts[0].Data}}
	module, err := Embed(NewModule(), renamed)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Read(module)
	var list *errors.List
	if !stderrors.As(err, &list) || list.Len() != 1 {
		t.Fatalf("expected one collected error, got %v", err)
	}

	garbage := []gen.Artifact{{Name: "__SPEC_XDR_X", Data: []byte{0, 0, 0, 9}}}
	module, err = Embed(NewModule(), garbage)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Read(module); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseSchema}) {
		t.Errorf("expected schema error, got %v", err)
	}
}
