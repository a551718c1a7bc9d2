package production

import (
	"fmt"
	"strings"
)

// Shortage faltante de un componente detectado durante la producción:
// nombre del componente, stock disponible y stock requerido.
type Shortage struct {
	Component string `json:"component"`
	Available int64  `json:"available"`
	Required  int64  `json:"required"`
}

// Message devuelve el mensaje legible del faltante.
func (s Shortage) Message() string {
	if s.Required < 0 {
		return fmt.Sprintf("No puede quedar stock negativo para %s.", s.Component)
	}
	return fmt.Sprintf("Stock insuficiente para %s: %d en inventario y se requieren %d.",
		s.Component, s.Available, s.Required)
}

// ShortageError lista completa de faltantes de una producción rechazada.
// Se acumulan todos los componentes antes de fallar, nunca se corta en el
// primero, para que el caller vea cada faltante en una sola respuesta.
type ShortageError []Shortage

func (e ShortageError) Error() string {
	msgs := make([]string, len(e))
	for i, s := range e {
		msgs[i] = s.Message()
	}
	return strings.Join(msgs, "\n")
}

// Messages devuelve los mensajes individuales (para la respuesta HTTP).
func (e ShortageError) Messages() []string {
	msgs := make([]string, len(e))
	for i, s := range e {
		msgs[i] = s.Message()
	}
	return msgs
}
