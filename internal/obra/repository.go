package obra

import (
	"errors"
	"fmt"

	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrObraNaoEncontrada = errors.New("obra não encontrada")
	ErrObraInativa       = errors.New("obra indisponível para venda")
	ErrOrigemItem        = errors.New("informe obraId ou imagemPersonalizada, não ambos")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(o *Obra) error {
	return r.DB.Create(o).Error
}

// List filtra por categoria quando informada. Inativas só aparecem com incluirInativas.
func (r *Repository) List(categoria string, incluirInativas bool) ([]Obra, error) {
	q := r.DB.Order("titulo")
	if categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	if !incluirInativas {
		q = q.Where("ativa = ?", true)
	}
	var obras []Obra
	err := q.Find(&obras).Error
	return obras, err
}

func (r *Repository) FindByID(id uint) (*Obra, error) {
	var o Obra
	if err := r.DB.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObraNaoEncontrada
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repository) Update(o *Obra) error {
	return r.DB.Save(o).Error
}

func (r *Repository) Delete(o *Obra) error {
	return r.DB.Delete(o).Error
}

// PrecoBase resolve o preço base de um item: a obra do catálogo ou, para
// imagem enviada pelo arquiteto, o valor fixo de imagem personalizada.
// Devolve também o título a ser congelado no item.
func (r *Repository) PrecoBase(obraID *uint, imagemPersonalizada string) (decimal.Decimal, string, error) {
	switch {
	case obraID != nil && imagemPersonalizada != "":
		return decimal.Zero, "", ErrOrigemItem
	case obraID != nil:
		o, err := r.FindByID(*obraID)
		if err != nil {
			return decimal.Zero, "", err
		}
		if !o.Ativa {
			return decimal.Zero, "", fmt.Errorf("%w: %s", ErrObraInativa, o.Titulo)
		}
		return o.PrecoBase, o.Titulo, nil
	case imagemPersonalizada != "":
		return precificacao.PrecoBaseImagemPersonalizada, "Imagem personalizada", nil
	default:
		return decimal.Zero, "", ErrOrigemItem
	}
}
