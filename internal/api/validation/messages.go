package validation

import "fmt"

// message renders the Spanish error text for a failed tag on field.
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case "integer":
		return fmt.Sprintf("El campo %s debe ser un número entero.", field)
	case "number":
		return fmt.Sprintf("El campo %s debe ser un número.", field)
	case "string":
		return fmt.Sprintf("El campo %s debe ser una cadena de texto.", field)
	case "array":
		return fmt.Sprintf("El campo %s debe ser un arreglo.", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser una dirección de correo válida.", field)
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres.", field, param)
	case "max":
		return fmt.Sprintf("El campo %s no debe tener más de %s caracteres.", field, param)
	default:
		return fmt.Sprintf("El campo %s no es válido.", field)
	}
}
