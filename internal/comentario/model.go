package comentario

import "gorm.io/gorm"

// Comentario é uma entrada na linha do tempo da proposta. Comentários do
// sistema registram transições de status e não têm autor.
type Comentario struct {
	gorm.Model
	PropostaID      uint   `gorm:"not null;index" json:"propostaId"`
	Texto           string `gorm:"type:text;not null" json:"texto"`
	Sistema         bool   `gorm:"not null" json:"sistema"`
	ArquitetoID     *uint  `gorm:"index" json:"arquitetoId,omitempty"`
	AdministradorID *uint  `gorm:"index" json:"administradorId,omitempty"`
}

// Autor indica se userID (no papel informado) escreveu o comentário.
func (c *Comentario) Autor(userID uint, isAdmin bool) bool {
	if c.Sistema {
		return false
	}
	if isAdmin {
		return c.AdministradorID != nil && *c.AdministradorID == userID
	}
	return c.ArquitetoID != nil && *c.ArquitetoID == userID
}
