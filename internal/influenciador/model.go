package influenciador

import (
	"gorm.io/gorm"
)

// Status de atividade do influenciador no hub.
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// Influenciador representa um perfil gerenciado pelo hub de aquisição.
// Usuários administradores vivem na mesma tabela, marcados por IsAdmin.
type Influenciador struct {
	gorm.Model
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email" gorm:"unique"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`

	// CacheHora é o valor-hora usado pelo fechamento de ciclo (R$/h).
	// Zero significa perfil incompleto para fins de pagamento.
	CacheHora float64 `json:"cacheHora" gorm:"not null;default:0"`
	Status    string  `json:"status" gorm:"size:20;not null;default:'ativo'"`

	// Links de perfil por plataforma (colunas explícitas, uma por plataforma)
	LinkTwitch    string `json:"linkTwitch"`
	LinkYoutube   string `json:"linkYoutube"`
	LinkInstagram string `json:"linkInstagram"`
	LinkTiktok    string `json:"linkTiktok"`
	LinkKick      string `json:"linkKick"`

	Senha                 string `json:"-"`
	IsAdmin               bool   `json:"isAdmin" gorm:"not null;default:false"`
	PrecisaRedefinirSenha bool   `json:"-"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Influenciador{})
}
