package live

import (
	"time"

	"gorm.io/gorm"
)

// Plataformas suportadas pela agenda.
const (
	PlataformaTwitch    = "twitch"
	PlataformaYoutube   = "youtube"
	PlataformaInstagram = "instagram"
	PlataformaTiktok    = "tiktok"
	PlataformaKick      = "kick"
)

// Status de uma live. A única transição modelada é
// agendada -> realizada | nao_realizada.
const (
	StatusAgendada     = "agendada"
	StatusRealizada    = "realizada"
	StatusNaoRealizada = "nao_realizada"
)

// PlataformaValida informa se o nome de plataforma é conhecido.
func PlataformaValida(p string) bool {
	switch p {
	case PlataformaTwitch, PlataformaYoutube, PlataformaInstagram, PlataformaTiktok, PlataformaKick:
		return true
	}
	return false
}

// Live representa uma transmissão agendada ou realizada de um influenciador.
type Live struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	InfluenciadorID uint      `gorm:"not null;index" json:"influenciadorId"`
	Titulo          string    `gorm:"size:255;not null" json:"titulo"`
	Data            time.Time `gorm:"not null;index" json:"data"`
	Horario         string    `gorm:"size:5" json:"horario"` // HH:MM
	Plataforma      string    `gorm:"size:20;not null" json:"plataforma"`
	Status          string    `gorm:"size:20;not null;default:'agendada';index" json:"status"`
	Link            string    `gorm:"size:512" json:"link"`
	Observacao      string    `json:"observacao"`
	CriadoPorID     uint      `json:"criadoPorId"`

	Resultado *LiveResultado `gorm:"foreignKey:LiveID;constraint:OnDelete:CASCADE" json:"resultado"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LiveResultado guarda as métricas de uma live realizada (1:1 com Live).
type LiveResultado struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	LiveID         uint   `gorm:"not null;uniqueIndex" json:"liveId"`
	DuracaoHoras   int    `gorm:"not null;default:0" json:"duracaoHoras"`
	DuracaoMinutos int    `gorm:"not null;default:0" json:"duracaoMinutos"` // 0..59
	MediaViewers   int    `gorm:"not null;default:0" json:"mediaViewers"`
	PicoViewers    int    `gorm:"not null;default:0" json:"picoViewers"`
	Observacao     string `json:"observacao"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HorasBilhaveis converte a duração registrada em horas decimais.
func (r *LiveResultado) HorasBilhaveis() float64 {
	return float64(r.DuracaoHoras) + float64(r.DuracaoMinutos)/60.0
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Live{}, &LiveResultado{})
}
