package artifact

import (
	"bytes"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/artifact/internal/binary"
	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
)

// SectionName is the custom section holding contract type schemas.
const SectionName = "contractspecv0"

const sectionCustom byte = 0

var (
	magic   = []byte{0x00, 0x61, 0x73, 0x6d}
	version = []byte{0x01, 0x00, 0x00, 0x00}
)

// NewModule returns an empty core module: the header and nothing else.
func NewModule() []byte {
	return append(append([]byte{}, magic...), version...)
}

// CustomSection is a named custom section of a module.
type CustomSection struct {
	Name string
	Data []byte
}

type section struct {
	name  string
	data  []byte
	start int
	end   int
	id    byte
}

func (s section) custom() bool {
	return s.id == sectionCustom
}

// scan splits a module into its sections without interpreting them.
func scan(module []byte) ([]section, error) {
	if len(module) < len(magic)+len(version) {
		return nil, errors.Load("module header", io.ErrUnexpectedEOF)
	}
	if !bytes.Equal(module[:4], magic) {
		return nil, errors.Load("invalid wasm magic number", nil)
	}
	if !bytes.Equal(module[4:8], version) {
		return nil, errors.Load("unsupported wasm version", nil)
	}

	r := binary.NewReader(module[8:])
	var sections []section
	for r.Len() > 0 {
		start := r.Position() + 8
		id, err := r.ReadByte()
		if err != nil {
			return nil, errors.Load("section header", r.WrapError("section header", err))
		}
		data, err := r.ReadVec()
		if err != nil {
			return nil, errors.Load("section data", r.WrapError("section data", err))
		}

		s := section{id: id, start: start, end: r.Position() + 8, data: data}
		if s.custom() {
			sr := binary.NewReader(data)
			if s.name, err = sr.ReadName(); err != nil {
				return nil, errors.Load("custom section name", sr.WrapError("custom section", err))
			}
			if s.data, err = sr.ReadRemaining(); err != nil {
				return nil, errors.Load("custom section data", sr.WrapError("custom section", err))
			}
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// Sections lists the custom sections of a module in file order.
func Sections(module []byte) ([]CustomSection, error) {
	sections, err := scan(module)
	if err != nil {
		return nil, err
	}
	var out []CustomSection
	for _, s := range sections {
		if s.custom() {
			out = append(out, CustomSection{Name: s.name, Data: s.data})
		}
	}
	return out, nil
}

// Embed returns a copy of module with the artifacts stored in a single
// SectionName custom section appended after the existing sections. Earlier
// SectionName sections are dropped.
func Embed(module []byte, artifacts []gen.Artifact) ([]byte, error) {
	sections, err := scan(module)
	if err != nil {
		return nil, err
	}
	payload, err := EncodeSection(artifacts)
	if err != nil {
		return nil, err
	}

	w := binary.NewWriter()
	w.WriteBytes(module[:8])
	replaced := 0
	for _, s := range sections {
		if s.custom() && s.name == SectionName {
			replaced++
			continue
		}
		w.WriteBytes(module[s.start:s.end])
	}

	body := binary.NewWriter()
	body.WriteName(SectionName)
	body.WriteBytes(payload)
	w.Byte(sectionCustom)
	w.WriteVec(body.Bytes())

	Logger().Debug("embedded contract section",
		zap.Int("artifacts", len(artifacts)),
		zap.Int("replaced", replaced),
		zap.Int("size", w.Len()))
	return w.Bytes(), nil
}

// EncodeSection encodes the payload of a SectionName section. Artifacts are
// sorted by name; names must be unique and non-empty.
func EncodeSection(artifacts []gen.Artifact) ([]byte, error) {
	sorted := append([]gen.Artifact(nil), artifacts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	w := binary.NewWriter()
	w.WriteU32(uint32(len(sorted)))
	for i, a := range sorted {
		if a.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseLoad, "artifact with empty name")
		}
		if i > 0 && sorted[i-1].Name == a.Name {
			return nil, errors.New(errors.PhaseLoad, errors.KindDuplicateName).
				Value(a.Name).
				Detail("artifact %q given more than once", a.Name).
				Build()
		}
		w.WriteName(a.Name)
		w.WriteVec(a.Data)
	}
	return w.Bytes(), nil
}

// DecodeSection decodes the payload of a SectionName section.
func DecodeSection(data []byte) ([]gen.Artifact, error) {
	r := binary.NewReader(data)
	count, err := r.ReadU32()
	if err != nil {
		return nil, errors.Load("artifact count", r.WrapError(SectionName, err))
	}
	// each artifact takes at least two length bytes
	if int(count) > r.Len()/2 {
		return nil, errors.Load("artifact count", r.WrapError(SectionName, io.ErrUnexpectedEOF))
	}

	artifacts := make([]gen.Artifact, 0, count)
	seen := make(map[string]bool, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadName()
		if err != nil {
			return nil, errors.Load("artifact name", r.WrapError(SectionName, err))
		}
		if seen[name] {
			return nil, errors.New(errors.PhaseLoad, errors.KindDuplicateName).
				Value(name).
				Detail("artifact %q stored more than once", name).
				Build()
		}
		seen[name] = true
		body, err := r.ReadVec()
		if err != nil {
			return nil, errors.Load("artifact data", r.WrapError(SectionName, err))
		}
		artifacts = append(artifacts, gen.Artifact{Name: name, Data: body})
	}
	if r.Len() != 0 {
		return nil, errors.InvalidData(errors.PhaseLoad, nil, "trailing bytes after artifacts")
	}
	return artifacts, nil
}
