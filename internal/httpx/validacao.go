package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrPayload indica corpo ausente ou JSON malformado.
var ErrPayload = errors.New("payload inválido")

// Violacoes mapeia campo -> regra violada.
type Violacoes map[string]string

func (v Violacoes) Error() string {
	partes := make([]string, 0, len(v))
	for campo, regra := range v {
		partes = append(partes, campo+": "+regra)
	}
	return "dados inválidos (" + strings.Join(partes, ", ") + ")"
}

var validate = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		nome, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if nome == "-" {
			return ""
		}
		return nome
	})
	return v
}

// Validar aplica as tags `validate` do DTO.
func Validar(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var erros validator.ValidationErrors
	if !errors.As(err, &erros) {
		return err
	}
	out := Violacoes{}
	for _, fe := range erros {
		campo := fe.Namespace()
		if _, resto, ok := strings.Cut(campo, "."); ok {
			campo = resto
		}
		regra := fe.Tag()
		if fe.Param() != "" {
			regra += "=" + fe.Param()
		}
		out[campo] = regra
	}
	return out
}

// Decodificar lê o JSON do corpo e valida o DTO.
func Decodificar(r *http.Request, dto any) error {
	if r.Body == nil {
		return ErrPayload
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return Validar(dto)
}

// ResponderErroEntrada escreve 400 para JSON malformado e 422 para violações.
func ResponderErroEntrada(w http.ResponseWriter, err error) {
	var v Violacoes
	if errors.As(err, &v) {
		Erro(w, http.StatusUnprocessableEntity, "dados inválidos", v)
		return
	}
	http.Error(w, "payload inválido", http.StatusBadRequest)
}
