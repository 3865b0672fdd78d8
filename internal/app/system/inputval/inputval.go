// Package inputval validates form structs declared with `validate` tags.
//
//	type form struct {
//	    Titulo string `validate:"required,max=200" label:"Título"`
//	    Email  string `validate:"email" label:"Email"`
//	}
//
// Supported rules: required, max=N (runes, or items for slices), email,
// httpurl, oneof=a|b|c, territory, participant.
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/raizes/internal/domain/models"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Add records a failure that is not expressed as a tag.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks every tagged field of the struct v (or *v).
// Rules other than required are skipped for empty values.
func Validate(v any) *Result {
	res := &Result{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return res
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || !f.IsExported() {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		if msg := check(rv.Field(i), tag, label); msg != "" {
			res.Add(f.Name, msg)
		}
	}
	return res
}

// check returns the message of the first failing rule in tag.
func check(fv reflect.Value, tag, label string) string {
	empty := isEmpty(fv)
	for _, rule := range strings.Split(tag, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(rule), "=")
		if name == "required" {
			if empty {
				return fmt.Sprintf("%s é obrigatório.", label)
			}
			continue
		}
		if empty {
			continue
		}
		switch name {
		case "max":
			n, err := strconv.Atoi(arg)
			if err != nil {
				continue
			}
			if length(fv) > n {
				if fv.Kind() == reflect.Slice {
					return fmt.Sprintf("%s aceita no máximo %d itens.", label, n)
				}
				return fmt.Sprintf("%s deve ter no máximo %d caracteres.", label, n)
			}
		case "email":
			if !IsValidEmail(fv.String()) {
				return "Informe um email válido."
			}
		case "httpurl":
			if !IsValidHTTPURL(fv.String()) {
				return fmt.Sprintf("%s deve ser um endereço http(s) válido.", label)
			}
		case "oneof":
			if !contains(strings.Split(arg, "|"), fv.String()) {
				return fmt.Sprintf("%s tem um valor inválido.", label)
			}
		case "territory":
			if !models.TerritoryType(fv.String()).Valid() {
				return fmt.Sprintf("%s: tipo de território desconhecido.", label)
			}
		case "participant":
			if !models.ParticipantType(fv.String()).Selectable() {
				return fmt.Sprintf("%s: escolha como você participa.", label)
			}
		}
	}
	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return v.IsZero()
}

func length(v reflect.Value) int {
	if v.Kind() == reflect.String {
		return utf8.RuneCountInString(v.String())
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Map {
		return v.Len()
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
