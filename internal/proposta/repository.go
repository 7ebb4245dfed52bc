package proposta

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, p *Proposta) error
	BuscarPorID(db *gorm.DB, id uint) (*Proposta, error)
	Listar(db *gorm.DB, arquitetoID uint, status string) ([]Proposta, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func itensOrdenados(db *gorm.DB) *gorm.DB {
	return db.Order("posicao")
}

// Criar grava cabeçalho e itens juntos.
func (r *repositoryImpl) Criar(db *gorm.DB, p *Proposta) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Proposta, error) {
	var p Proposta
	if err := db.Preload("Itens", itensOrdenados).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropostaNaoEncontrada
		}
		return nil, err
	}
	return &p, nil
}

// Listar filtra por arquiteto (0 = todos) e status (vazio = todos).
func (r *repositoryImpl) Listar(db *gorm.DB, arquitetoID uint, status string) ([]Proposta, error) {
	q := db.Preload("Itens", itensOrdenados).Order("created_at DESC, id DESC")
	if arquitetoID != 0 {
		q = q.Where("arquiteto_id = ?", arquitetoID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Proposta
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Proposta{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPropostaNaoEncontrada
	}
	return nil
}
