package producao

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrdemNaoEncontrada = errors.New("ordem de produção não encontrada")
	ErrOrdemConcluida     = errors.New("ordem de produção já concluída")
)

type Repository interface {
	Abrir(db *gorm.DB, propostaID, arquitetoID uint, observacoes string) (*OrdemProducao, error)
	BuscarPorProposta(db *gorm.DB, propostaID uint) (*OrdemProducao, error)
	BuscarPorID(db *gorm.DB, id uint) (*OrdemProducao, error)
	ListarTodos(db *gorm.DB, status string) ([]OrdemProducao, error)
	Concluir(db *gorm.DB, id uint) (*OrdemProducao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func naoEncontrada(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrdemNaoEncontrada
	}
	return err
}

// Abrir cria a ordem da proposta; se já existir, devolve a existente.
func (r *repositoryImpl) Abrir(db *gorm.DB, propostaID, arquitetoID uint, observacoes string) (*OrdemProducao, error) {
	if o, err := r.BuscarPorProposta(db, propostaID); err == nil {
		return o, nil
	} else if !errors.Is(err, ErrOrdemNaoEncontrada) {
		return nil, err
	}
	o := OrdemProducao{
		PropostaID:  propostaID,
		ArquitetoID: arquitetoID,
		Numero:      NovoNumero(),
		Status:      StatusAberta,
		Observacoes: observacoes,
	}
	if err := db.Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repositoryImpl) BuscarPorProposta(db *gorm.DB, propostaID uint) (*OrdemProducao, error) {
	var o OrdemProducao
	if err := db.Where("proposta_id = ?", propostaID).First(&o).Error; err != nil {
		return nil, naoEncontrada(err)
	}
	return &o, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*OrdemProducao, error) {
	var o OrdemProducao
	if err := db.First(&o, id).Error; err != nil {
		return nil, naoEncontrada(err)
	}
	return &o, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB, status string) ([]OrdemProducao, error) {
	q := db.Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ordens []OrdemProducao
	err := q.Find(&ordens).Error
	return ordens, err
}

func (r *repositoryImpl) Concluir(db *gorm.DB, id uint) (*OrdemProducao, error) {
	o, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusConcluida {
		return nil, ErrOrdemConcluida
	}
	agora := time.Now()
	o.Status = StatusConcluida
	o.ConcluidaEm = &agora
	if err := db.Save(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}
