package obra

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var acervoInicial = []Obra{
	{Titulo: "Horizonte Azul", Artista: "Marina Lobo", Categoria: "abstrato", PrecoBase: decimal.NewFromInt(1250), Imagem: "/galeria/horizonte-azul.jpg", Ativa: true},
	{Titulo: "Serra ao Amanhecer", Artista: "Caio Reis", Categoria: "paisagem", PrecoBase: decimal.NewFromInt(1480), Imagem: "/galeria/serra-amanhecer.jpg", Ativa: true},
	{Titulo: "Folhagem Tropical", Artista: "Júlia Prado", Categoria: "botanico", PrecoBase: decimal.NewFromInt(980), Imagem: "/galeria/folhagem-tropical.jpg", Ativa: true},
	{Titulo: "Linhas de Concreto", Artista: "Rafael Antunes", Categoria: "fotografia", PrecoBase: decimal.NewFromInt(1120), Imagem: "/galeria/linhas-concreto.jpg", Ativa: true},
	{Titulo: "Mar de Dentro", Artista: "Marina Lobo", Categoria: "abstrato", PrecoBase: decimal.NewFromInt(1690), Imagem: "/galeria/mar-de-dentro.jpg", Ativa: true},
}

// Semear insere o acervo inicial que ainda não existir (por título) e
// devolve quantas obras foram criadas.
func Semear(db *gorm.DB) (int64, error) {
	obras := make([]Obra, len(acervoInicial))
	copy(obras, acervoInicial)
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&obras)
	return res.RowsAffected, res.Error
}
