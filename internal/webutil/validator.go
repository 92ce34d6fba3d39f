package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// Validator es la instancia compartida por toda la aplicación.
var Validator *validator.Validate

// Trans traduce los mensajes de error al español.
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"cedula":      "cédula",
	"email":       "correo electrónico",
	"password":    "contraseña",
	"token":       "enlace",
	"categoria":   "categoría",
	"descripcion": "descripción",
}

func init() {
	Validator = validator.New()

	// Use the json tag as the reported field name.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	spanish := es.New()
	uni := ut.New(spanish, spanish)
	var found bool
	Trans, found = uni.GetTranslator("es")
	if !found {
		log.Fatal("translator not found")
	}

	if err := es_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// registerTranslation overrides a tag message using the translated field name.
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName)
			return t
		})
	}

	registerTranslation("required", "El campo {0} es obligatorio.")
	registerTranslation("email", "El campo {0} no tiene un formato válido.")
	registerTranslation("numeric", "El campo {0} solo admite dígitos.")

	// min/max need the parameter as second argument.
	registerParamTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName, fe.Param())
			return t
		})
	}

	registerParamTranslation("min", "El campo {0} debe tener al menos {1} caracteres.")
	registerParamTranslation("max", "El campo {0} debe tener como máximo {1} caracteres.")
}
