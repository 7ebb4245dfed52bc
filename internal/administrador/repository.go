package administrador

import (
	"errors"
	"log"
	"strings"

	"github.com/GaleriaDecor/api-arquiteto/internal/utils"
	"gorm.io/gorm"
)

var ErrAdministradorNaoEncontrado = errors.New("administrador não encontrado")

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Administrador, error)
	Save(db *gorm.DB, a *Administrador) error
	ListAll(db *gorm.DB) ([]Administrador, error)
	FindByID(db *gorm.DB, id uint) (*Administrador, error)
	Update(db *gorm.DB, id uint, req *UpdateRequest) (*Administrador, error)
	Delete(db *gorm.DB, id uint) error
	Count(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func naoEncontrado(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAdministradorNaoEncontrado
	}
	return err
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Administrador, error) {
	var a Administrador
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&a).Error; err != nil {
		return nil, naoEncontrado(err)
	}
	return &a, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, a *Administrador) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Administrador, error) {
	var list []Administrador
	err := db.Order("nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Administrador, error) {
	var a Administrador
	if err := db.First(&a, id).Error; err != nil {
		return nil, naoEncontrado(err)
	}
	return &a, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, req *UpdateRequest) (*Administrador, error) {
	a, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		a.Nome = *req.Nome
	}
	if req.Sobrenome != nil {
		a.Sobrenome = *req.Sobrenome
	}
	if req.Telefone != nil {
		a.Telefone = *req.Telefone
	}
	if req.Foto != nil {
		a.Foto = *req.Foto
	}
	if err := db.Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Administrador{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAdministradorNaoEncontrado
	}
	return nil
}

func (r *repositoryImpl) Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&Administrador{}).Count(&n).Error
	return n, err
}

// GarantirAdminInicial cria o primeiro administrador quando a tabela está
// vazia. Sem e-mail/senha configurados, não faz nada.
func GarantirAdminInicial(db *gorm.DB, email, senha string) error {
	if email == "" || senha == "" {
		return nil
	}
	repo := NewRepository()
	n, err := repo.Count(db)
	if err != nil || n > 0 {
		return err
	}
	if err := utils.ValidarSenha(senha); err != nil {
		return err
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	a := Administrador{
		Nome:     "Administrador",
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
	}
	if err := repo.Save(db, &a); err != nil {
		return err
	}
	log.Printf("[administrador][seed] administrador inicial criado email=%s", a.Email)
	return nil
}
