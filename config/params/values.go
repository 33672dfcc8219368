package params

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	Mainnet ConfigName = iota
	Minimal
)

// ConfigNames provides network configuration names.
var ConfigNames = map[ConfigName]string{
	Mainnet: "mainnet",
	Minimal: "minimal",
}

// ConfigName enum describes the type of known network in use.
type ConfigName int

func (n ConfigName) String() string {
	s, ok := ConfigNames[n]
	if !ok {
		return "undefined"
	}
	return s
}

// ErrInvalidConfig is returned when a config value cannot be used.
var ErrInvalidConfig = errors.New("invalid chain config")

func errInvalidConfig(key string, value interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, "%s = %v", key, value)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// configValidator reports fields by their yaml key, e.g. SLOTS_PER_EPOCH.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ByName returns a copy of the named preset.
func ByName(name string) (*BeaconChainConfig, error) {
	switch name {
	case ConfigNames[Mainnet]:
		return MainnetConfig().Copy(), nil
	case ConfigNames[Minimal]:
		return MinimalSpecConfig(), nil
	}
	return nil, errors.Errorf("unknown config name %q", name)
}
