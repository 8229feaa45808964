package brokerlog

import (
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *Config) error {
	const op errors.Op = "brokerlog.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	// Options are skipped by the struct walk above; only caller-supplied
	// options are validated, the package defaults are trusted.
	if cfg.LoggerOptions != nil {
		if err := validate.Struct(cfg.LoggerOptions); err != nil {
			return errors.New(op).Err(err).Msg(errMsgOptionsInvalid)
		}
		if cfg.LoggerOptions.FileLogging && cfg.WorkingDir == emptyString {
			return errors.New(op).Msg(errMsgWorkingDirUnset)
		}
	}

	return nil
}
