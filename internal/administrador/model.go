package administrador

import "time"

// Administrador é sempre admin para o RBAC.
type Administrador struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome"`
	Sobrenome string    `gorm:"size:100" json:"sobrenome"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Telefone  string    `gorm:"size:20" json:"telefone"`
	Foto      string    `gorm:"size:255" json:"foto"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
