package artifact

import (
	"context"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/schema"
)

// Contract is the decoded contents of a SectionName section.
type Contract struct {
	Artifacts []gen.Artifact
	Entries   []*schema.Entry
}

// Entry returns the entry for a type name.
func (c *Contract) Entry(name string) (*schema.Entry, bool) {
	for _, e := range c.Entries {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// Extract compiles module with wazero and decodes its contract section.
func Extract(ctx context.Context, module []byte) (*Contract, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCustomSections(true))
	defer rt.Close(ctx)
	return ExtractWith(ctx, rt, module)
}

// ExtractWith is Extract on an existing runtime. The runtime must have
// custom sections enabled.
func ExtractWith(ctx context.Context, rt wazero.Runtime, module []byte) (*Contract, error) {
	compiled, err := rt.CompileModule(ctx, module)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}
	defer compiled.Close(ctx)

	for _, s := range compiled.CustomSections() {
		if s.Name() == SectionName {
			return decodeContract(s.Data())
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, "custom section", SectionName)
}

// Read decodes the contract section of module without compiling it.
func Read(module []byte) (*Contract, error) {
	sections, err := Sections(module)
	if err != nil {
		return nil, err
	}
	var found *CustomSection
	for i := range sections {
		if sections[i].Name == SectionName {
			found = &sections[i]
		}
	}
	if found == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "custom section", SectionName)
	}
	return decodeContract(found.Data)
}

func decodeContract(data []byte) (*Contract, error) {
	artifacts, err := DecodeSection(data)
	if err != nil {
		return nil, err
	}

	c := &Contract{Artifacts: artifacts}
	errs := &errors.List{}
	for _, a := range artifacts {
		entry, n, err := schema.Unmarshal(a.Data)
		if err != nil {
			errs.Add(err, a.Name)
			continue
		}
		if n != len(a.Data) {
			errs.Add(errors.InvalidData(errors.PhaseLoad, nil, "trailing bytes after entry"), a.Name)
			continue
		}
		if want := schema.ArtifactName(entry.Name()); want != a.Name {
			errs.Add(errors.New(errors.PhaseLoad, errors.KindInvalidData).
				TypeName(entry.Name()).
				Detail("artifact holds type %q, expected name %q", entry.Name(), want).
				Build(), a.Name)
			continue
		}
		c.Entries = append(c.Entries, entry)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	Logger().Debug("extracted contract section", zap.Int("entries", len(c.Entries)))
	return c, nil
}
