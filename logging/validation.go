package logging

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func sharedValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New(errMsgNilConfig)
	}
	if err := sharedValidator().Struct(cfg); err != nil {
		return fmt.Errorf("%s: %w", errMsgConfigInvalid, err)
	}
	return nil
}
