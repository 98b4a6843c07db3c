package live

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Lives e seus resultados.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Filtro da listagem de agenda. Campos zerados são ignorados.
type Filtro struct {
	De              time.Time
	Ate             time.Time
	InfluenciadorID uint
	Status          string
}

// Criar insere uma nova live.
func (r *Repository) Criar(l *Live) error {
	return r.DB.Create(l).Error
}

// BuscarPorID retorna uma live com seu resultado, se houver.
func (r *Repository) BuscarPorID(id uint) (*Live, error) {
	var l Live
	if err := r.DB.Preload("Resultado").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Listar retorna as lives que atendem ao filtro, ordenadas por data e horário.
func (r *Repository) Listar(f Filtro) ([]Live, error) {
	q := r.DB.Preload("Resultado")
	if !f.De.IsZero() {
		q = q.Where("data >= ?", f.De)
	}
	if !f.Ate.IsZero() {
		q = q.Where("data <= ?", f.Ate)
	}
	if f.InfluenciadorID != 0 {
		q = q.Where("influenciador_id = ?", f.InfluenciadorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var lives []Live
	err := q.Order("data ASC, horario ASC").Find(&lives).Error
	return lives, err
}

// ListarRealizadasNoPeriodo busca as lives realizadas dentro da janela do
// ciclo, com resultado pré-carregado. Lives realizadas sem resultado vêm com
// Resultado == nil; é responsabilidade do chamador tratá-las como zero horas.
func (r *Repository) ListarRealizadasNoPeriodo(db *gorm.DB, inicio, fim time.Time) ([]Live, error) {
	if db == nil {
		db = r.DB
	}
	var lives []Live
	err := db.Preload("Resultado").
		Where("status = ? AND data BETWEEN ? AND ?", StatusRealizada, inicio, fim).
		Find(&lives).Error
	return lives, err
}

// Atualizar salva alterações em uma live existente.
func (r *Repository) Atualizar(l *Live) error {
	return r.DB.Save(l).Error
}

// AtualizarStatus altera apenas o status da live.
func (r *Repository) AtualizarStatus(id uint, status string) error {
	return r.DB.Model(&Live{}).Where("id = ?", id).Update("status", status).Error
}

// Deletar remove uma live (e o resultado, por cascata).
func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Live{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SalvarResultado cria ou atualiza o resultado de uma live (1:1 por live_id).
func (r *Repository) SalvarResultado(liveID uint, novo *LiveResultado) (*LiveResultado, error) {
	var existente LiveResultado
	err := r.DB.Where("live_id = ?", liveID).First(&existente).Error
	if err == nil {
		existente.DuracaoHoras = novo.DuracaoHoras
		existente.DuracaoMinutos = novo.DuracaoMinutos
		existente.MediaViewers = novo.MediaViewers
		existente.PicoViewers = novo.PicoViewers
		existente.Observacao = novo.Observacao
		if err := r.DB.Save(&existente).Error; err != nil {
			return nil, err
		}
		return &existente, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	novo.LiveID = liveID
	if err := r.DB.Create(novo).Error; err != nil {
		return nil, err
	}
	return novo, nil
}
