package precificacao

import (
	"github.com/shopspring/decimal"
)

// Categorias de moldura
const (
	CategoriaCaixa      = "caixa"
	CategoriaPremium    = "premium"
	CategoriaInox       = "inox"
	CategoriaSemMoldura = "sem_moldura"
)

// Subcategorias opcionais
const (
	SubcategoriaClassica  = "classica"
	SubcategoriaLuxo      = "luxo"
	SubcategoriaFlutuante = "flutuante"
	SubcategoriaConcava   = "concava"
)

// Chaves de vidro da tabela de preços
const (
	ChaveSemVidro = "sem_vidro"
	ChaveComVidro = "com_vidro"
)

// PrecoBaseImagemPersonalizada é o preço base de uma imagem enviada pelo arquiteto.
var PrecoBaseImagemPersonalizada = decimal.NewFromInt(890)

// Moldura é uma opção de moldura do catálogo.
type Moldura struct {
	ID           string          `json:"id"`
	Nome         string          `json:"nome"`
	Preco        decimal.Decimal `json:"preco"`
	Categoria    string          `json:"categoria"`
	Subcategoria string          `json:"subcategoria,omitempty"`
	GrupoPreco   string          `json:"grupoPreco"`
	PermiteVidro bool            `json:"permiteVidro"`
	Miniatura    string          `json:"miniatura,omitempty"`
}

// Acabamento é com ou sem vidro. Preco é o adicional nominal.
type Acabamento struct {
	ID    string          `json:"id"`
	Nome  string          `json:"nome"`
	Preco decimal.Decimal `json:"preco"`
	Vidro bool            `json:"vidro"`
}

// Formato define o arranjo de painéis e os tamanhos disponíveis.
type Formato struct {
	ID       string   `json:"id"`
	Nome     string   `json:"nome"`
	Tamanhos []string `json:"tamanhos"`
	Paineis  int      `json:"paineis"`
}

func (f Formato) PossuiTamanho(tamanho string) bool {
	for _, t := range f.Tamanhos {
		if t == tamanho {
			return true
		}
	}
	return false
}

// TabelaPrecos: grupo -> sem_vidro/com_vidro -> tamanho -> preço absoluto
type TabelaPrecos map[string]map[string]map[string]decimal.Decimal

func ChaveVidro(vidro bool) string {
	if vidro {
		return ChaveComVidro
	}
	return ChaveSemVidro
}

// Consultar devolve o preço de referência para o grupo, vidro e tamanho.
func (t TabelaPrecos) Consultar(grupo string, vidro bool, tamanho string) (decimal.Decimal, error) {
	porVidro, ok := t[grupo]
	if !ok {
		return decimal.Zero, ErrGrupoPrecoAusente
	}
	porTamanho, ok := porVidro[ChaveVidro(vidro)]
	if !ok {
		return decimal.Zero, ErrGrupoPrecoAusente
	}
	preco, ok := porTamanho[tamanho]
	if !ok {
		return decimal.Zero, ErrTamanhoInvalido
	}
	return preco, nil
}
