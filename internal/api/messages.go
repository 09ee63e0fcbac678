package api

import (
	"fmt"
	"strings"
)

const (
	msgValidation          = "Error de validación"
	msgInvalidBody         = "Formato de solicitud inválido"
	msgUpstreamUnavailable = "Error al comunicarse con el servicio externo"
	msgUpstreamInvalid     = "Respuesta inválida del servicio externo"
	msgUnexpected          = "Ocurrió un error inesperado"

	msgLoginOK          = "Inicio de sesión exitoso"
	msgLoginFailed      = "Credenciales inválidas"
	msgTokenMissing     = "Token de autenticación no proporcionado"
	msgProfileOK        = "Perfil de usuario obtenido exitosamente"
	msgProfileSimulated = "Esta es una simulación de perfil, ya que FakeStoreAPI no tiene este endpoint"
)

// noun holds the Spanish words used to build messages for one resource.
// Every resource proxied here is grammatically masculine.
type noun struct {
	singular string // "producto"
	plural   string // "productos"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (n noun) totalKey() string { return "total_" + n.plural }

func (n noun) listed() string {
	return fmt.Sprintf("Listado de %s obtenido exitosamente", n.plural)
}

func (n noun) listFailed() string {
	return fmt.Sprintf("Error al obtener el listado de %s", n.plural)
}

func (n noun) found(id string) string {
	return fmt.Sprintf("%s con ID %s encontrado", capitalize(n.singular), id)
}

func (n noun) notFound(id string) string {
	return fmt.Sprintf("No se encontró ningún %s con el ID %s", n.singular, id)
}

func (n noun) created() string {
	return fmt.Sprintf("%s creado exitosamente", capitalize(n.singular))
}

func (n noun) createFailed() string {
	return fmt.Sprintf("Error al crear el %s", n.singular)
}

func (n noun) updated(id string) string {
	return fmt.Sprintf("%s con ID %s actualizado correctamente", capitalize(n.singular), id)
}

func (n noun) updateFailed(id string) string {
	return fmt.Sprintf("Error al actualizar el %s con ID %s", n.singular, id)
}

func (n noun) deleteFailed(id string) string {
	return fmt.Sprintf("Error al eliminar el %s con ID %s", n.singular, id)
}

var (
	productNoun = noun{singular: "producto", plural: "productos"}
	cartNoun    = noun{singular: "carrito", plural: "carritos"}
	userNoun    = noun{singular: "usuario", plural: "usuarios"}
)
