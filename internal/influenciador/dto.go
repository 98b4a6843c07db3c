package influenciador

type ResumoInfluenciadorDTO struct {
	ID        uint    `json:"id"`
	Nome      string  `json:"nome"`
	Sobrenome string  `json:"sobrenome"`
	Email     string  `json:"email"`
	Telefone  string  `json:"telefone"`
	Foto      string  `json:"foto"`
	Status    string  `json:"status"`
	CacheHora float64 `json:"cacheHora"`
}

// MontarResumoDTO projeta o registro completo no formato de listagem.
func MontarResumoDTO(i Influenciador) ResumoInfluenciadorDTO {
	return ResumoInfluenciadorDTO{
		ID:        i.ID,
		Nome:      i.Nome,
		Sobrenome: i.Sobrenome,
		Email:     i.Email,
		Telefone:  i.Telefone,
		Foto:      i.Foto,
		Status:    i.Status,
		CacheHora: i.CacheHora,
	}
}
