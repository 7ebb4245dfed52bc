package administrador

// LoginRequest é usado em POST /administradores/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateRequest é usado em POST /administradores
type CreateRequest struct {
	Nome      string `json:"nome" validate:"required,max=100"`
	Sobrenome string `json:"sobrenome" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Telefone  string `json:"telefone" validate:"max=20"`
	Foto      string `json:"foto" validate:"max=255"`
	Senha     string `json:"senha" validate:"required"`
}

// UpdateRequest é usado em PUT /administradores/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type UpdateRequest struct {
	Nome      *string `json:"nome,omitempty" validate:"omitempty,max=100"`
	Sobrenome *string `json:"sobrenome,omitempty" validate:"omitempty,max=100"`
	Telefone  *string `json:"telefone,omitempty" validate:"omitempty,max=20"`
	Foto      *string `json:"foto,omitempty" validate:"omitempty,max=255"`
}
