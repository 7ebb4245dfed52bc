package comissao

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrComissaoNaoEncontrada = errors.New("comissão não encontrada")
	ErrStatusComissao        = errors.New("comissão não está a receber")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Comissao) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComissaoNaoEncontrada
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByProposta(propostaID uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.Where("proposta_id = ?", propostaID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComissaoNaoEncontrada
		}
		return nil, err
	}
	return &c, nil
}

// List filtra por arquiteto (0 = todos) e status (vazio = todos).
func (r *Repository) List(arquitetoID uint, status string) ([]Comissao, error) {
	q := r.DB.Order("created_at DESC, id DESC")
	if arquitetoID != 0 {
		q = q.Where("arquiteto_id = ?", arquitetoID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Comissao
	err := q.Find(&list).Error
	return list, err
}

// UpdateStatusByProposta muda só o status; valor e taxa ficam como estão.
func (r *Repository) UpdateStatusByProposta(propostaID uint, status string) error {
	res := r.DB.Model(&Comissao{}).
		Where("proposta_id = ?", propostaID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrComissaoNaoEncontrada
	}
	return nil
}

// RegistrarPagamento exige status a_receber. A troca de status é condicional,
// então só um de dois pagamentos simultâneos passa.
func (r *Repository) RegistrarPagamento(id uint, data time.Time, comprovante, notaFiscal string) (*Comissao, error) {
	res := r.DB.Model(&Comissao{}).
		Where("id = ? AND status = ?", id, StatusAReceber).
		Updates(map[string]any{
			"status":         StatusPaga,
			"data_pagamento": &data,
			"comprovante":    comprovante,
			"nota_fiscal":    notaFiscal,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
		return nil, ErrStatusComissao
	}
	return r.FindByID(id)
}
