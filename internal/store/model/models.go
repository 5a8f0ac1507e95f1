package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Zoo is a single row of the zoos table.
// Columns other than id and name are kept in Extra and rendered alongside them.
type Zoo struct {
	ID    int64                  `db:"id" json:"id"`
	Name  string                 `db:"name" json:"name"`
	Extra map[string]interface{} `db:"-" json:"-"`
}

// ZooFromRow builds a Zoo from a scanned row keyed by column name.
func ZooFromRow(row map[string]interface{}) (Zoo, error) {
	var z Zoo
	for col, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		switch col {
		case "id":
			id, ok := v.(int64)
			if !ok {
				return Zoo{}, fmt.Errorf("zoo id: unexpected type %T", v)
			}
			z.ID = id
		case "name":
			if v == nil {
				continue
			}
			name, ok := v.(string)
			if !ok {
				return Zoo{}, fmt.Errorf("zoo name: unexpected type %T", v)
			}
			z.Name = name
		default:
			if z.Extra == nil {
				z.Extra = make(map[string]interface{})
			}
			z.Extra[col] = v
		}
	}
	return z, nil
}

func (z Zoo) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, len(z.Extra)+2)
	for k, v := range z.Extra {
		data[k] = v
	}
	data["id"] = z.ID
	data["name"] = z.Name
	return json.Marshal(data)
}

// ZooInput carries the fields a caller must supply on create and update.
type ZooInput struct {
	Name string `json:"name" validate:"required"`
}

// Fields is a decoded request body written to a row as-is.
// Keys map to column names.
type Fields map[string]interface{}

// Name returns the "name" value when it is a string.
func (f Fields) Name() (string, bool) {
	v, ok := f["name"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Input extracts the required fields for validation.
func (f Fields) Input() ZooInput {
	name, _ := f.Name()
	return ZooInput{Name: name}
}

// Writable returns the payload without the identifier, which the store owns.
func (f Fields) Writable() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// Columns returns the payload keys in a stable order.
func (f Fields) Columns() []string {
	cols := make([]string, 0, len(f))
	for k := range f {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
