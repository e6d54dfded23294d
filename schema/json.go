package schema

import (
	"github.com/goccy/go-json"
)

type jsonEntry struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name"`
	Artifact string       `json:"artifact"`
	Fields   []jsonMember `json:"fields,omitempty"`
	Cases    []jsonMember `json:"cases,omitempty"`
	Version  uint32       `json:"version"`
}

type jsonMember struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// MarshalJSON renders entries as an indented JSON document for tooling.
// Types are rendered in expression syntax.
func MarshalJSON(entries []*Entry) ([]byte, error) {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			Name:     e.Name(),
			Artifact: ArtifactName(e.Name()),
			Version:  e.Version,
		}
		switch {
		case e.Struct != nil:
			je.Kind = "struct"
			for _, f := range e.Struct.Fields {
				je.Fields = append(je.Fields, jsonMember{Name: f.Name.String(), Type: f.Type.String()})
			}
		case e.Union != nil:
			je.Kind = "union"
			for _, c := range e.Union.Cases {
				m := jsonMember{Name: c.Name.String()}
				if c.Payload != nil {
					m.Type = c.Payload.String()
				}
				je.Cases = append(je.Cases, m)
			}
		}
		out = append(out, je)
	}
	return json.MarshalIndent(out, "", "  ")
}
