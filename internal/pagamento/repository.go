package pagamento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o acesso a dados de Pagamentos.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Upsert grava o pagamento com chave (ciclo, influenciador). Um registro
// existente do mesmo par é sobrescrito por inteiro — incluindo status e
// data de pagamento; refechar um ciclo descarta progresso manual de status.
func (r *Repository) Upsert(p *Pagamento) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ciclo_pagamento_id"}, {Name: "influenciador_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"horas_realizadas", "cache_hora", "valor_total", "status", "pago_em", "updated_at",
		}),
	}).Create(p).Error
}

// FindByID busca um pagamento pelo ID.
func (r *Repository) FindByID(id uint) (*Pagamento, error) {
	var p Pagamento
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// PagamentoComInfluenciador é a linha da listagem por ciclo.
type PagamentoComInfluenciador struct {
	Pagamento
	NomeInfluenciador string `json:"nomeInfluenciador"`
}

// ListarPorCiclo retorna os pagamentos de um ciclo com o nome do
// influenciador, em ordem de inserção.
func (r *Repository) ListarPorCiclo(cicloID uint) ([]PagamentoComInfluenciador, error) {
	var lista []PagamentoComInfluenciador
	err := r.DB.
		Table("pagamentos").
		Select("pagamentos.*, influenciadors.nome AS nome_influenciador").
		Joins("JOIN influenciadors ON influenciadors.id = pagamentos.influenciador_id").
		Where("pagamentos.ciclo_pagamento_id = ?", cicloID).
		Order("pagamentos.id ASC").
		Scan(&lista).Error
	return lista, err
}

// ListarPorCiclos retorna todos os pagamentos dos ciclos informados.
func (r *Repository) ListarPorCiclos(cicloIDs []uint) ([]Pagamento, error) {
	if len(cicloIDs) == 0 {
		return nil, nil
	}
	var lista []Pagamento
	err := r.DB.
		Where("ciclo_pagamento_id IN ?", cicloIDs).
		Order("id ASC").
		Find(&lista).Error
	return lista, err
}

// AtualizarStatus atualiza o status e ajusta pago_em.
// Se status == "pago", carimba a data informada; senão zera (NULL).
func (r *Repository) AtualizarStatus(id uint, status string, pagoEm time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == StatusPago {
		updates["pago_em"] = &pagoEm
	} else {
		updates["pago_em"] = nil
	}
	return r.DB.Model(&Pagamento{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// HistoricoPagamento é uma linha do drill-down por influenciador,
// anotada com a janela do ciclo de origem.
type HistoricoPagamento struct {
	Pagamento
	CicloInicio time.Time `json:"cicloInicio"`
	CicloFim    time.Time `json:"cicloFim"`
}

// HistoricoPorInfluenciador retorna os últimos pagamentos do influenciador
// em todos os ciclos (não limitado a janela), do mais recente ao mais antigo.
func (r *Repository) HistoricoPorInfluenciador(influenciadorID uint, limite int) ([]HistoricoPagamento, error) {
	var lista []HistoricoPagamento
	err := r.DB.
		Table("pagamentos").
		Select("pagamentos.*, ciclo_pagamentos.data_inicio AS ciclo_inicio, ciclo_pagamentos.data_fim AS ciclo_fim").
		Joins("JOIN ciclo_pagamentos ON ciclo_pagamentos.id = pagamentos.ciclo_pagamento_id").
		Where("pagamentos.influenciador_id = ?", influenciadorID).
		Order("ciclo_pagamentos.data_inicio DESC").
		Limit(limite).
		Scan(&lista).Error
	return lista, err
}
