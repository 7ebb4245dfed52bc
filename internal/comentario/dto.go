package comentario

import "time"

type AuthorDTO struct {
	Type string `json:"type"`         // "arquiteto" | "administrador" | "sistema"
	ID   *uint  `json:"id,omitempty"` // nil para sistema
	Nome string `json:"nome,omitempty"`
}

type ComentarioDTO struct {
	ID         uint      `json:"id"`
	PropostaID uint      `json:"propostaId"`
	Texto      string    `json:"texto"`
	Sistema    bool      `json:"sistema"`
	CreatedAt  time.Time `json:"createdAt"`
	Author     AuthorDTO `json:"author"`
}

type CriarComentarioRequest struct {
	Texto string `json:"texto" validate:"required,max=2000"`
}

func toDTO(c Comentario) ComentarioDTO {
	out := ComentarioDTO{
		ID:         c.ID,
		PropostaID: c.PropostaID,
		Texto:      c.Texto,
		Sistema:    c.Sistema,
		CreatedAt:  c.CreatedAt,
	}

	switch {
	case c.Sistema:
		out.Author = AuthorDTO{Type: "sistema", Nome: "Sistema"}
	case c.AdministradorID != nil:
		out.Author = AuthorDTO{Type: "administrador", ID: c.AdministradorID, Nome: "Galeria"}
	case c.ArquitetoID != nil:
		out.Author = AuthorDTO{Type: "arquiteto", ID: c.ArquitetoID, Nome: "Arquiteto"}
	default:
		out.Author = AuthorDTO{Type: "arquiteto", Nome: "Usuário"}
	}
	return out
}

func toDTOs(list []Comentario) []ComentarioDTO {
	out := make([]ComentarioDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out
}
