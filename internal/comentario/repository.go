package comentario

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrComentarioNaoEncontrado = errors.New("comentário não encontrado")
	ErrPropostaNaoEncontrada   = errors.New("proposta não encontrada")
)

type Repository interface {
	Criar(db *gorm.DB, c *Comentario) error
	ListarPorProposta(db *gorm.DB, propostaID uint) ([]Comentario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Comentario, error)
	Atualizar(db *gorm.DB, id uint, novoTexto string) error
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Comentario) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorProposta(db *gorm.DB, propostaID uint) ([]Comentario, error) {
	var comentarios []Comentario
	err := db.Where("proposta_id = ?", propostaID).Order("created_at, id").Find(&comentarios).Error
	return comentarios, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Comentario, error) {
	var c Comentario
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComentarioNaoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novoTexto string) error {
	return db.Model(&Comentario{}).Where("id = ?", id).Update("texto", novoTexto).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	return db.Delete(&Comentario{}, id).Error
}

// RegistrarSistema grava um comentário do sistema; usado dentro da
// transação que muda o status da proposta.
func RegistrarSistema(db *gorm.DB, propostaID uint, texto string) error {
	return NewRepository().Criar(db, &Comentario{PropostaID: propostaID, Texto: texto, Sistema: true})
}

// donoProposta lê o arquiteto dono sem importar o pacote proposta.
func donoProposta(db *gorm.DB, propostaID uint) (uint, error) {
	var dono struct{ ArquitetoID uint }
	res := db.Table("propostas").
		Select("arquiteto_id").
		Where("id = ? AND deleted_at IS NULL", propostaID).
		Limit(1).
		Scan(&dono)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrPropostaNaoEncontrada
	}
	return dono.ArquitetoID, nil
}
