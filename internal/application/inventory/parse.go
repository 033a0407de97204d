package inventory

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// demandRow demanda agregada de un SKU, en orden de primera aparición.
type demandRow struct {
	SKU      string
	Quantity int64
}

// parsedDemand resultado del parseo de un archivo de demanda.
type parsedDemand struct {
	Rows                   []demandRow
	RowsRead               int
	RowsValid              int
	TotalQuantityRequested int64
}

// decodeDemandFile convierte los bytes del archivo a texto. Los POS exportan
// con frecuencia en Windows-1252; si el contenido no es UTF-8 válido se
// decodifica con ese charset en vez de rechazarlo.
func decodeDemandFile(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// parseDemand parsea el formato de filas `SKU<,|;>CANTIDAD`:
// líneas en blanco ignoradas; cada línea no vacía cuenta en RowsRead; se
// descartan filas con menos de dos campos, fila de cabecera (sku/quantity),
// SKU vacío y cantidades no enteras o <= 0. Las filas sobrevivientes cuentan
// en RowsValid y se agregan por SKU preservando el orden de primera aparición.
func parseDemand(text string) parsedDemand {
	var out parsedDemand
	index := make(map[string]int)

	for _, rawLine := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		out.RowsRead++

		parts := strings.Split(strings.ReplaceAll(line, ";", ","), ",")
		if len(parts) < 2 {
			continue
		}
		sku := strings.TrimSpace(parts[0])
		qtyStr := strings.TrimSpace(parts[1])

		// Fila de cabecera opcional
		if strings.EqualFold(sku, "sku") || strings.EqualFold(qtyStr, "quantity") {
			continue
		}
		if sku == "" {
			continue
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}

		out.RowsValid++
		out.TotalQuantityRequested += qty
		if i, ok := index[sku]; ok {
			out.Rows[i].Quantity += qty
		} else {
			index[sku] = len(out.Rows)
			out.Rows = append(out.Rows, demandRow{SKU: sku, Quantity: qty})
		}
	}
	return out
}
