package dto

// ImportResult resultado de una carga masiva. Cada fila fallida se reporta
// como "Fila <n>: <mensaje>" (n = número de fila de datos, 1-based) y nunca
// aborta el resto del archivo.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
