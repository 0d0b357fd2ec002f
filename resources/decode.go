package resources

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// decodeValue decodes a JSON value tree onto target, which must be a
// pointer. Fields are matched by json tag. Date fields arrive either as
// time.Time (normalized payloads) or RFC 3339 strings (normalization
// disabled); both decode onto time.Time targets.
func decodeValue(tree interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		TagName:    "json",
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("build payload decoder: %w", err)
	}
	if err := decoder.Decode(tree); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
