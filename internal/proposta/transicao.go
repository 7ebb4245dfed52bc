package proposta

import "errors"

var (
	ErrTransicaoInvalida     = errors.New("transição de status inválida")
	ErrPropostaNaoEncontrada = errors.New("proposta não encontrada")
	ErrSomenteAdmin          = errors.New("somente administradores podem marcar a proposta como paga")
	ErrAcessoNegado          = errors.New("acesso negado")
	ErrExclusaoNaoPermitida  = errors.New("só propostas canceladas podem ser excluídas")
	ErrArquitetoInapto       = errors.New("arquiteto não aprovado")
)

// rascunho → enviada → paga | cancelada; rascunho → cancelada
var transicoes = map[string][]string{
	StatusRascunho: {StatusEnviada, StatusCancelada},
	StatusEnviada:  {StatusPaga, StatusCancelada},
}

func PodeTransitar(de, para string) bool {
	for _, s := range transicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}
