package netlist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"girder/yosys2digitaljs/pkg/bitvec"
	"girder/yosys2digitaljs/pkg/util/ordered"
)

// decodeOrdered decodes a JSON object into an insertion-ordered map, using
// token-based streaming so that key order survives (encoding/json's map
// decoding does not preserve it).
func decodeOrdered[T any](data []byte) (*ordered.Map[string, T], error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ordered.New[string, T](), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("netlist: expected JSON object, got %v", tok)
	}

	m := ordered.New[string, T]()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("netlist: expected string key, got %v", keyTok)
		}

		var val T
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("netlist: decoding %q: %w", key, err)
		}

		m.Set(key, val)
	}
	// consume closing '}'
	_, err = dec.Token()

	return m, err
}

// UnmarshalJSON implements parameter polymorphism: a Param arrives as either
// a JSON number or a JSON string carrying a bit-pattern.
func (p *Param) UnmarshalJSON(data []byte) error {
	var asInt int64
	if err := json.Unmarshal(data, &asInt); err == nil {
		*p = Param{hasInt: true, intVal: asInt}
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err != nil {
		return fmt.Errorf("netlist: invalid parameter %s", string(data))
	}

	*p = Param{strVal: asStr}

	return nil
}

// MarshalJSON renders an integer parameter as a JSON number and a bit-string
// parameter as a JSON string.
func (p Param) MarshalJSON() ([]byte, error) {
	if p.hasInt {
		return json.Marshal(p.intVal)
	}

	return json.Marshal(p.strVal)
}

type rawCell struct {
	Type           string               `json:"type"`
	Parameters     json.RawMessage      `json:"parameters"`
	Attributes     json.RawMessage      `json:"attributes"`
	PortDirections map[string]Direction `json:"port_directions"`
	Connections    json.RawMessage      `json:"connections"`
}

// UnmarshalJSON decodes a single cell entry, preserving the insertion order
// of its parameters, attributes and connections.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw rawCell
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	params, err := decodeOrdered[Param](raw.Parameters)
	if err != nil {
		return err
	}

	attrs, err := decodeOrdered[Param](raw.Attributes)
	if err != nil {
		return err
	}

	bits, err := decodeOrdered[bitvec.Vector](raw.Connections)
	if err != nil {
		return err
	}

	*c = Cell{
		Type:           raw.Type,
		Parameters:     params,
		Attributes:     attrs,
		PortDirections: raw.PortDirections,
		Connections:    bits,
	}

	return nil
}

type rawNetName struct {
	HideName json.RawMessage `json:"hide_name"`
	Bits     json.RawMessage `json:"bits"`
	Attrs    json.RawMessage `json:"attributes"`
}

// UnmarshalJSON decodes a single netname entry.
func (n *NetName) UnmarshalJSON(data []byte) error {
	var raw rawNetName
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var bits bitvec.Vector
	if len(raw.Bits) > 0 {
		if err := json.Unmarshal(raw.Bits, &bits); err != nil {
			return err
		}
	}

	attrs, err := decodeOrdered[Param](raw.Attrs)
	if err != nil {
		return err
	}

	hidden := false

	if len(raw.HideName) > 0 {
		var asInt int

		if err := json.Unmarshal(raw.HideName, &asInt); err == nil {
			hidden = asInt != 0
		} else {
			var asBool bool
			if err := json.Unmarshal(raw.HideName, &asBool); err == nil {
				hidden = asBool
			}
		}
	}

	*n = NetName{Hidden: hidden, Bits: bits, Attributes: attrs}

	return nil
}

type rawModule struct {
	Ports    json.RawMessage `json:"ports"`
	Cells    json.RawMessage `json:"cells"`
	NetNames json.RawMessage `json:"netnames"`
}

// UnmarshalJSON decodes a single module entry, preserving port and cell
// declaration order.
func (m *Module) UnmarshalJSON(data []byte) error {
	var raw rawModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ports, err := decodeOrdered[Port](raw.Ports)
	if err != nil {
		return err
	}

	cells, err := decodeOrdered[Cell](raw.Cells)
	if err != nil {
		return err
	}

	netnames, err := decodeOrdered[NetName](raw.NetNames)
	if err != nil {
		return err
	}

	*m = Module{Ports: ports, Cells: cells, NetNames: netnames}

	return nil
}

type rawNetlist struct {
	Modules json.RawMessage `json:"modules"`
}

// UnmarshalJSON decodes the top-level synthesizer document.
func (nl *Netlist) UnmarshalJSON(data []byte) error {
	var raw rawNetlist
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	modules, err := decodeOrdered[Module](raw.Modules)
	if err != nil {
		return err
	}

	*nl = Netlist{Modules: modules}

	return nil
}

// Parse decodes a synthesizer JSON document into a Netlist.
func Parse(data []byte) (*Netlist, error) {
	var nl Netlist
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, err
	}

	return &nl, nil
}
