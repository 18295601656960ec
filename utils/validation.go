package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationMessage mengubah error binding gin menjadi pesan berbahasa Indonesia.
func ValidationMessage(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		msgs := make([]string, 0, len(ves))
		for _, fe := range ves {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Tipe data %s tidak valid", typeErr.Field)
	case errors.As(err, &syntaxErr):
		return "Format JSON tidak valid"
	}
	return "Data tidak valid"
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "min":
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s harus lebih dari %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s tidak boleh kurang dari %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s bukan email yang valid", field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s tidak valid", field)
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
