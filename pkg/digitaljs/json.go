package digitaljs

import "encoding/json"

// MarshalJSON flattens a device into {"type": ..., <attrs...>}, matching the
// shape the schematic viewer expects for every tag in the closed vocabulary.
func (d Device) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Attrs)+1)
	for k, v := range d.Attrs {
		out[k] = v
	}

	out["type"] = d.Type

	return json.Marshal(out)
}

type jsonPortRef struct {
	ID   string `json:"id"`
	Port string `json:"port"`
}

type jsonLineCol struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonSourcePosition struct {
	Name string      `json:"name"`
	From jsonLineCol `json:"from"`
	To   jsonLineCol `json:"to"`
}

type jsonConnector struct {
	From            jsonPortRef          `json:"from"`
	To              jsonPortRef          `json:"to"`
	Name            string               `json:"name,omitempty"`
	SourcePositions []jsonSourcePosition `json:"source_positions,omitempty"`
}

// MarshalJSON renders a connector as {from, to, name?, source_positions?}.
func (c Connector) MarshalJSON() ([]byte, error) {
	jc := jsonConnector{
		From: jsonPortRef{ID: c.From.ID, Port: c.From.Port},
		To:   jsonPortRef{ID: c.To.ID, Port: c.To.Port},
		Name: c.Name,
	}

	for _, p := range c.SourcePositions {
		jc.SourcePositions = append(jc.SourcePositions, jsonSourcePosition{
			Name: p.Name,
			From: jsonLineCol{Line: p.From.Line, Column: p.From.Column},
			To:   jsonLineCol{Line: p.To.Line, Column: p.To.Column},
		})
	}

	return json.Marshal(jc)
}

type jsonModule struct {
	Devices     map[string]Device      `json:"devices"`
	Connectors  []Connector            `json:"connectors"`
	Subcircuits map[string]*Module     `json:"subcircuits,omitempty"`
}

// MarshalJSON renders a module graph as {devices, connectors, subcircuits?}.
func (m *Module) MarshalJSON() ([]byte, error) {
	connectors := m.Connectors
	if connectors == nil {
		connectors = []Connector{}
	}

	return json.Marshal(jsonModule{
		Devices:     m.Devices,
		Connectors:  connectors,
		Subcircuits: m.Subcircuits,
	})
}
