package integration

import (
	"encoding/json"
	"fmt"
	"io"
)

func ToUnsafeJSONString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// WriteJSON writes v as a single JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json; %w", err)
	}
	return nil
}

// WriteJSONLines writes every element of vv as a compact JSON document on its own line.
func WriteJSONLines[T any](w io.Writer, vv []T) error {
	enc := json.NewEncoder(w)
	for i, v := range vv {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json line %d; %w", i, err)
		}
	}
	return nil
}
