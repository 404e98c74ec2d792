package repository

import (
	"encoding/json"
)

// marshalNullable serializa o valor para JSON, preservando NULL quando a
// coleção é vazia ou nula
func marshalNullable(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" || string(data) == "[]" || string(data) == "{}" {
		return nil, nil
	}

	return data, nil
}

// rawMessageOrNil evita gravar bytes vazios em colunas jsonb
func rawMessageOrNil(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
