package arquiteto

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrArquitetoNaoEncontrado = errors.New("arquiteto não encontrado")
	ErrArquitetoNaoAprovado   = errors.New("cadastro aguardando aprovação")
	ErrArquitetoRejeitado     = errors.New("cadastro rejeitado")
	ErrCadastroDuplicado      = errors.New("e-mail ou documento já cadastrado")
)

type Repository interface {
	BuscarPorEmailOuDocumento(db *gorm.DB, valor string) (*Arquiteto, error)
	Existe(db *gorm.DB, email, documento string) (bool, error)
	Salvar(db *gorm.DB, a *Arquiteto) error
	BuscarPorID(db *gorm.DB, id uint) (*Arquiteto, error)
	Listar(db *gorm.DB, status string) ([]Arquiteto, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Busca primeiro por e-mail, depois por documento, para evitar ambiguidade
func (r *repositoryImpl) BuscarPorEmailOuDocumento(db *gorm.DB, valor string) (*Arquiteto, error) {
	var a Arquiteto
	valor = strings.TrimSpace(valor)

	if err := db.Where("email = ?", strings.ToLower(valor)).First(&a).Error; err == nil {
		return &a, nil
	}
	if err := db.Where("documento = ?", SomenteDigitos(valor)).First(&a).Error; err == nil {
		return &a, nil
	}
	return nil, ErrArquitetoNaoEncontrado
}

func (r *repositoryImpl) Existe(db *gorm.DB, email, documento string) (bool, error) {
	var n int64
	err := db.Unscoped().Model(&Arquiteto{}).
		Where("email = ? OR documento = ?", email, documento).
		Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *Arquiteto) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Arquiteto, error) {
	var a Arquiteto
	if err := db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArquitetoNaoEncontrado
		}
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, status string) ([]Arquiteto, error) {
	q := db.Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Arquiteto
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Arquiteto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrArquitetoNaoEncontrado
	}
	return nil
}

// SomenteDigitos normaliza CPF/CNPJ digitado com pontuação.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
