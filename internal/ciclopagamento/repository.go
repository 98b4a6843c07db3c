package ciclopagamento

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Ciclos de Pagamento.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um novo ciclo (aberto).
func (r *Repository) Criar(c *CicloPagamento) error {
	return r.DB.Create(c).Error
}

// BuscarPorID retorna um ciclo pelo ID.
func (r *Repository) BuscarPorID(id uint) (*CicloPagamento, error) {
	var c CicloPagamento
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarTodos retorna os ciclos do mais recente ao mais antigo.
// O primeiro da lista é a seleção padrão do painel.
func (r *Repository) ListarTodos() ([]CicloPagamento, error) {
	var ciclos []CicloPagamento
	err := r.DB.Order("data_inicio DESC").Find(&ciclos).Error
	return ciclos, err
}

// IDsNoPeriodo retorna os IDs dos ciclos cuja janela [inicio, fim] está
// contida no período informado.
func (r *Repository) IDsNoPeriodo(inicio, fim time.Time) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&CicloPagamento{}).
		Where("data_inicio >= ? AND data_fim <= ?", inicio, fim).
		Order("data_inicio ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// FecharCondicional grava fechado_em somente se o ciclo ainda estiver aberto.
// Retorna false se outra sessão fechou primeiro (zero linhas afetadas).
func (r *Repository) FecharCondicional(db *gorm.DB, id uint, quando time.Time) (bool, error) {
	if db == nil {
		db = r.DB
	}
	res := db.Model(&CicloPagamento{}).
		Where("id = ? AND fechado_em IS NULL", id).
		Update("fechado_em", quando)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
