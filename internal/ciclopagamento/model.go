package ciclopagamento

import (
	"time"

	"gorm.io/gorm"
)

// CicloPagamento é a janela semanal de faturamento. FechadoEm nulo indica
// ciclo aberto; o fechamento é uma transição de mão única.
type CicloPagamento struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	DataInicio time.Time  `gorm:"not null;index" json:"dataInicio"`
	DataFim    time.Time  `gorm:"not null" json:"dataFim"`
	FechadoEm  *time.Time `json:"fechadoEm"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Aberto informa se o ciclo ainda aceita fechamento.
func (c *CicloPagamento) Aberto() bool {
	return c.FechadoEm == nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CicloPagamento{})
}
