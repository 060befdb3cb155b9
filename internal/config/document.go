package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Fallback reasons reported when a data document cannot be used.
const (
	ReasonUnset     = "unset"
	ReasonMissing   = "missing"
	ReasonMalformed = "malformed"
	ReasonEmpty     = "empty"
	ReasonInvalid   = "invalid"
)

// LoadDocument reads a YAML (or JSON) data file and decodes it into out using
// `koanf` struct tags. Read and parse failures wrap ErrLoadConfig; an empty
// document wraps ErrEmptyDocument and decode failures wrap ErrInvalidConfig.
//
// Decoding is strict: values are never coerced between types, a mapping is
// not lifted into a list and fractional numbers do not fill integer fields.
func LoadDocument(path string, out any) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: no path configured", ErrLoadConfig)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrLoadConfig, path, err)
	}
	if len(k.Keys()) == 0 {
		return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrEmptyDocument, path)
	}
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       rejectFractionalInts,
			Result:           out,
			WeaklyTypedInput: false,
		},
	}
	if err := k.UnmarshalWithConf("", out, conf); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// rejectFractionalInts stops mapstructure from truncating 5.9 into an int.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not a whole number", data)
		}
	}
	return data, nil
}

// FallbackReason classifies a document error into a short metrics label.
func FallbackReason(path string, err error) string {
	switch {
	case strings.TrimSpace(path) == "":
		return ReasonUnset
	case errors.Is(err, fs.ErrNotExist):
		return ReasonMissing
	case errors.Is(err, ErrLoadConfig):
		return ReasonMalformed
	case errors.Is(err, ErrEmptyDocument):
		return ReasonEmpty
	default:
		return ReasonInvalid
	}
}
