package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrSenhaFraca = errors.New("a senha deve ter ao menos 8 caracteres, com letras e números")

func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// ValidarSenha exige 8+ caracteres com pelo menos uma letra e um número.
func ValidarSenha(senha string) error {
	if len([]rune(senha)) < 8 {
		return ErrSenhaFraca
	}
	var letra, numero bool
	for _, r := range senha {
		switch {
		case unicode.IsLetter(r):
			letra = true
		case unicode.IsDigit(r):
			numero = true
		}
	}
	if !letra || !numero {
		return ErrSenhaFraca
	}
	return nil
}

// sem 0/O e 1/l/I, que se confundem quando a senha é ditada
const alfabetoSenha = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GerarSenhaTemporaria gera 12 caracteres com crypto/rand e garante ao menos um dígito.
func GerarSenhaTemporaria() (string, error) {
	for {
		out := make([]byte, 12)
		for i := range out {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfabetoSenha))))
			if err != nil {
				return "", err
			}
			out[i] = alfabetoSenha[n.Int64()]
		}
		if ValidarSenha(string(out)) == nil {
			return string(out), nil
		}
	}
}
