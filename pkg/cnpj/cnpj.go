// Package cnpj valida y formatea documentos fiscales brasileños (CNPJ y CPF)
// con el algoritmo módulo 11 de la Receita Federal.
package cnpj

import (
	"fmt"
	"unicode"
)

// Longitudes de los documentos sin máscara.
const (
	CNPJLength = 14
	CPFLength  = 11
)

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits elimina puntos, barras y guiones y devuelve solo los dígitos.
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// ValidateCNPJ valida los dos dígitos verificadores de un CNPJ con o sin máscara.
func ValidateCNPJ(doc string) error {
	d := Digits(doc)
	if len(d) != CNPJLength {
		return fmt.Errorf("cnpj: se esperaban %d dígitos, se encontraron %d", CNPJLength, len(d))
	}
	if repeated(d) {
		return fmt.Errorf("cnpj: secuencia repetida no es válida")
	}
	if dv := checkDigit(d[:12], cnpjWeights1); dv != d[12] {
		return fmt.Errorf("cnpj: primer dígito verificador inválido: esperado %c, recibido %c", dv, d[12])
	}
	if dv := checkDigit(d[:13], cnpjWeights2); dv != d[13] {
		return fmt.Errorf("cnpj: segundo dígito verificador inválido: esperado %c, recibido %c", dv, d[13])
	}
	return nil
}

// ValidateCPF valida los dos dígitos verificadores de un CPF con o sin máscara.
func ValidateCPF(doc string) error {
	d := Digits(doc)
	if len(d) != CPFLength {
		return fmt.Errorf("cpf: se esperaban %d dígitos, se encontraron %d", CPFLength, len(d))
	}
	if repeated(d) {
		return fmt.Errorf("cpf: secuencia repetida no es válida")
	}
	if dv := checkDigit(d[:9], descending(10)); dv != d[9] {
		return fmt.Errorf("cpf: primer dígito verificador inválido: esperado %c, recibido %c", dv, d[9])
	}
	if dv := checkDigit(d[:10], descending(11)); dv != d[10] {
		return fmt.Errorf("cpf: segundo dígito verificador inválido: esperado %c, recibido %c", dv, d[10])
	}
	return nil
}

// ValidateTaxID acepta CPF (11 dígitos) o CNPJ (14 dígitos).
func ValidateTaxID(doc string) error {
	switch len(Digits(doc)) {
	case CPFLength:
		return ValidateCPF(doc)
	case CNPJLength:
		return ValidateCNPJ(doc)
	default:
		return fmt.Errorf("documento debe tener %d (CPF) o %d (CNPJ) dígitos", CPFLength, CNPJLength)
	}
}

// Format aplica la máscara 00.000.000/0000-00 (CNPJ) o 000.000.000-00 (CPF).
// Cualquier otra longitud se devuelve sin cambios.
func Format(doc string) string {
	d := Digits(doc)
	switch len(d) {
	case CNPJLength:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	case CPFLength:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	default:
		return doc
	}
}

func checkDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + (11 - rem))
}

// descending devuelve los pesos from, from-1, ..., 2.
func descending(from int) []int {
	w := make([]int, 0, from-1)
	for i := from; i >= 2; i-- {
		w = append(w, i)
	}
	return w
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
