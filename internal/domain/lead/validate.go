package lead

import "regexp"

// Patrones del formulario de captura. Deliberadamente simples: validan la
// forma mínima (presencia de @ y punto en el dominio, caracteres telefónicos),
// no la entregabilidad.
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s+()-]+$`)
)

// ValidEmail indica si el valor tiene forma de email.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone indica si el valor tiene solo caracteres telefónicos
// (dígitos, espacios, +, paréntesis y guiones).
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}
