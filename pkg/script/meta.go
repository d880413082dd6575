package script

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeMeta decodes a node's `@key: value` pairs into a typed struct using
// mapstructure tags, so hosts can declare the meta fields they care about:
//
//	var m struct {
//		Who        string `mapstructure:"who"`
//		Background string `mapstructure:"background"`
//	}
//	err := script.DecodeMeta(node.Meta, &m)
//
// Unknown keys are ignored; they belong to other consumers.
func DecodeMeta(meta map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true, // meta values are strings; allow "3" -> int
	})
	if err != nil {
		return fmt.Errorf("failed to build meta decoder: %w", err)
	}
	if err := dec.Decode(meta); err != nil {
		return fmt.Errorf("failed to decode meta: %w", err)
	}
	return nil
}
