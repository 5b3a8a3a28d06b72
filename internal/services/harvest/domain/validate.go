package domain

import (
	"reflect"
	"strings"
	"sync"

	perr "lemmyharvest/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Validator returns the record-contract validator, initializing on first use
// with english translations and json tag names
func Validator() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// CheckRecord verifies the emitted-record contract. A record either passes
// whole or is never emitted; there is no partial emission
func CheckRecord(r Record) error {
	svc := Validator()
	err := svc.Validator.Struct(r)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return perr.Validationf("record contract: %s", verrs[0].Translate(svc.Translator))
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "record contract")
}
