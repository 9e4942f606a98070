package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type stockRow struct {
	Line         int
	Name         string
	UnitMeasure  string
	MinimumStock decimal.Decimal
	Quantity     decimal.Decimal
}

// charsetReader decodifica a UTF-8 las planillas exportadas por Excel en Windows.
func charsetReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// parseRows lee la planilla. Los números aceptan coma decimal ("1.234,5").
func parseRows(r io.Reader, charset string) ([]stockRow, error) {
	in, err := charsetReader(r, charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"nome", "quantidade"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []stockRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := get(rec, "nome")
		if name == "" {
			continue
		}
		qty, err := parseNumber(get(rec, "quantidade"))
		if err != nil || qty.IsNegative() {
			return nil, fmt.Errorf("línea %d: quantidade inválida %q", line, get(rec, "quantidade"))
		}
		minimum, err := parseNumber(get(rec, "estoque_minimo"))
		if err != nil || minimum.IsNegative() {
			return nil, fmt.Errorf("línea %d: estoque_minimo inválido %q", line, get(rec, "estoque_minimo"))
		}
		rows = append(rows, stockRow{
			Line:         line,
			Name:         name,
			UnitMeasure:  get(rec, "unidade_medida"),
			MinimumStock: minimum,
			Quantity:     qty,
		})
	}
	return rows, nil
}

// parseNumber "" → 0; "1.234,5" → 1234.5; "12.5" → 12.5.
func parseNumber(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
