package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/models"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-fit-type': значение должно быть одним из slim|regular|loose.
	// Пустая строка проходит через 'omitempty' и трактуется как regular.
	mustRegister("is-fit-type", validateFitType)
}

func validateFitType(fl validator.FieldLevel) bool {
	return models.FitType(fl.Field().String()).IsValid()
}
