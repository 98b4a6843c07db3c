package pagamento

import (
	"time"

	"gorm.io/gorm"
)

// Status do pagamento. Avança estritamente para frente:
// em_analise -> a_pagar -> pago. perfil_incompleto é terminal e só muda
// com um novo fechamento de ciclo após o perfil ser completado.
const (
	StatusEmAnalise        = "em_analise"
	StatusAPagar           = "a_pagar"
	StatusPago             = "pago"
	StatusPerfilIncompleto = "perfil_incompleto"
)

// Pagamento é o valor computado de um influenciador em um ciclo.
// Existe no máximo um registro por par (ciclo, influenciador).
type Pagamento struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	CicloPagamentoID uint    `gorm:"not null;uniqueIndex:idx_pagamento_ciclo_influenciador" json:"cicloPagamentoId"`
	InfluenciadorID  uint    `gorm:"not null;uniqueIndex:idx_pagamento_ciclo_influenciador" json:"influenciadorId"`
	HorasRealizadas  float64 `gorm:"not null;default:0" json:"horasRealizadas"`
	CacheHora        float64 `gorm:"not null;default:0" json:"cacheHora"`
	ValorTotal       float64 `gorm:"not null;default:0" json:"valorTotal"`
	Status           string  `gorm:"size:30;not null;default:'em_analise';index" json:"status"`

	PagoEm *time.Time `json:"pagoEm"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}
