package catalogo

import (
	p "github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/shopspring/decimal"
)

// ordem das colunas de cada linha da tabela
var tamanhosTabela = []string{
	"40x60cm", "60x60cm", "60x90cm", "80x80cm", "85x55cm",
	"75x115cm", "115x75cm", "100x100cm", "150x100cm",
}

func linha(valores ...int64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(valores))
	for i, v := range valores {
		out[tamanhosTabela[i]] = decimal.NewFromInt(v)
	}
	return out
}

func reais(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Padrao devolve o catálogo embarcado na aplicação.
func Padrao() *Catalogo {
	return &Catalogo{
		Molduras: []p.Moldura{
			{ID: "caixa-preta", Nome: "Caixa Preta", Preco: reais(250), Categoria: p.CategoriaCaixa, GrupoPreco: "caixa", PermiteVidro: true, Miniatura: "/molduras/caixa-preta.jpg"},
			{ID: "caixa-branca", Nome: "Caixa Branca", Preco: reais(250), Categoria: p.CategoriaCaixa, GrupoPreco: "caixa", PermiteVidro: true, Miniatura: "/molduras/caixa-branca.jpg"},
			{ID: "caixa-madeira", Nome: "Caixa Madeira Natural", Preco: reais(290), Categoria: p.CategoriaCaixa, GrupoPreco: "caixa", PermiteVidro: true, Miniatura: "/molduras/caixa-madeira.jpg"},
			{ID: "classica-dourada", Nome: "Clássica Dourada", Preco: reais(420), Categoria: p.CategoriaPremium, Subcategoria: p.SubcategoriaClassica, GrupoPreco: "premium", PermiteVidro: true, Miniatura: "/molduras/classica-dourada.jpg"},
			{ID: "concava-nogueira", Nome: "Côncava Nogueira", Preco: reais(480), Categoria: p.CategoriaPremium, Subcategoria: p.SubcategoriaConcava, GrupoPreco: "premium", PermiteVidro: true, Miniatura: "/molduras/concava-nogueira.jpg"},
			{ID: "luxo-ouro-velho", Nome: "Luxo Ouro Velho", Preco: reais(560), Categoria: p.CategoriaPremium, Subcategoria: p.SubcategoriaLuxo, GrupoPreco: "premium_luxo", PermiteVidro: true, Miniatura: "/molduras/luxo-ouro-velho.jpg"},
			{ID: "flutuante-preta", Nome: "Flutuante Preta", Preco: reais(330), Categoria: p.CategoriaPremium, Subcategoria: p.SubcategoriaFlutuante, GrupoPreco: "flutuante", PermiteVidro: false, Miniatura: "/molduras/flutuante-preta.jpg"},
			{ID: "inox-escovado", Nome: "Inox Escovado", Preco: reais(380), Categoria: p.CategoriaInox, GrupoPreco: "inox", PermiteVidro: true, Miniatura: "/molduras/inox-escovado.jpg"},
			{ID: "sem-moldura", Nome: "Sem Moldura", Preco: decimal.Zero, Categoria: p.CategoriaSemMoldura, GrupoPreco: "sem_moldura", PermiteVidro: false},
		},
		Acabamentos: []p.Acabamento{
			{ID: "sem-vidro", Nome: "Sem Vidro", Preco: decimal.Zero, Vidro: false},
			{ID: "com-vidro", Nome: "Com Vidro", Preco: reais(180), Vidro: true},
			{ID: "vidro-antirreflexo", Nome: "Vidro Antirreflexo", Preco: reais(320), Vidro: true},
		},
		Formatos: []p.Formato{
			{ID: "quadrado", Nome: "Quadrado", Tamanhos: []string{"60x60cm", "80x80cm", "100x100cm"}, Paineis: 1},
			{ID: "padrao", Nome: "Padrão", Tamanhos: []string{"85x55cm", "115x75cm", "150x100cm"}, Paineis: 1},
			{ID: "2-telas", Nome: "2 Telas", Tamanhos: []string{"60x90cm", "75x115cm"}, Paineis: 2},
			{ID: "3-telas", Nome: "3 Telas", Tamanhos: []string{"40x60cm", "60x90cm"}, Paineis: 3},
		},
		Tabela: p.TabelaPrecos{
			"caixa": {
				p.ChaveSemVidro: linha(690, 720, 890, 940, 860, 1180, 1180, 1390, 1790),
				p.ChaveComVidro: linha(850, 900, 1110, 1190, 1070, 1480, 1480, 1760, 2290),
			},
			"premium": {
				p.ChaveSemVidro: linha(890, 930, 1150, 1220, 1110, 1530, 1530, 1810, 2330),
				p.ChaveComVidro: linha(1050, 1110, 1370, 1470, 1320, 1830, 1830, 2180, 2830),
			},
			"premium_luxo": {
				p.ChaveSemVidro: linha(1090, 1140, 1410, 1500, 1360, 1880, 1880, 2230, 2870),
				p.ChaveComVidro: linha(1250, 1320, 1630, 1750, 1570, 2180, 2180, 2600, 3370),
			},
			"flutuante": {
				p.ChaveSemVidro: linha(790, 830, 1020, 1080, 990, 1360, 1360, 1600, 2060),
			},
			"inox": {
				p.ChaveSemVidro: linha(940, 990, 1220, 1290, 1180, 1620, 1620, 1920, 2470),
				p.ChaveComVidro: linha(1100, 1170, 1440, 1540, 1390, 1920, 1920, 2290, 2970),
			},
			"sem_moldura": {
				p.ChaveSemVidro: linha(490, 520, 640, 680, 620, 850, 850, 1010, 1290),
			},
		},
	}
}
