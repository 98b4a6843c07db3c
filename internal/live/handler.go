package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AcquisicaoHub/api-livedash/internal/auth"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia as rotas da agenda de lives.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// DTO usado no POST /lives e PUT /lives/{id}
type LiveDTO struct {
	InfluenciadorID uint   `json:"influenciadorId"`
	Titulo          string `json:"titulo"`
	Data            string `json:"data"` // AAAA-MM-DD
	Horario         string `json:"horario"`
	Plataforma      string `json:"plataforma"`
	Link            string `json:"link"`
	Observacao      string `json:"observacao"`
}

// DTO usado no PUT /lives/{id}/resultado
type ResultadoDTO struct {
	DuracaoHoras   int    `json:"duracaoHoras"`
	DuracaoMinutos int    `json:"duracaoMinutos"`
	MediaViewers   int    `json:"mediaViewers"`
	PicoViewers    int    `json:"picoViewers"`
	Observacao     string `json:"observacao"`
}

func parseData(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Criar trata POST /lives
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto LiveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if dto.InfluenciadorID == 0 || dto.Titulo == "" {
		http.Error(w, "influenciador e título são obrigatórios", http.StatusBadRequest)
		return
	}
	if !PlataformaValida(dto.Plataforma) {
		http.Error(w, "plataforma inválida. Use twitch, youtube, instagram, tiktok ou kick.", http.StatusBadRequest)
		return
	}
	data, err := parseData(dto.Data)
	if err != nil {
		http.Error(w, "data inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}

	criadoPor, _ := auth.UserIDFromContext(r.Context())

	l := Live{
		InfluenciadorID: dto.InfluenciadorID,
		Titulo:          dto.Titulo,
		Data:            data,
		Horario:         dto.Horario,
		Plataforma:      dto.Plataforma,
		Status:          StatusAgendada,
		Link:            dto.Link,
		Observacao:      dto.Observacao,
		CriadoPorID:     criadoPor,
	}

	if err := h.Repo.Criar(&l); err != nil {
		http.Error(w, "erro ao criar live", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

// Listar trata GET /lives?de=&ate=&influenciador=&status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var f Filtro

	if de := r.URL.Query().Get("de"); de != "" {
		t, err := parseData(de)
		if err != nil {
			http.Error(w, "parâmetro 'de' inválido (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		f.De = t
	}
	if ate := r.URL.Query().Get("ate"); ate != "" {
		t, err := parseData(ate)
		if err != nil {
			http.Error(w, "parâmetro 'ate' inválido (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		f.Ate = t
	}
	if inf := r.URL.Query().Get("influenciador"); inf != "" {
		id, err := strconv.Atoi(inf)
		if err != nil {
			http.Error(w, "parâmetro 'influenciador' inválido", http.StatusBadRequest)
			return
		}
		f.InfluenciadorID = uint(id)
	}
	f.Status = r.URL.Query().Get("status")

	lives, err := h.Repo.Listar(f)
	if err != nil {
		http.Error(w, "erro ao listar lives", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lives)
}

// BuscarPorID trata GET /lives/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	l, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "live não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// Atualizar trata PUT /lives/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	l, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "live não encontrada", http.StatusNotFound)
		return
	}

	var dto LiveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if !PlataformaValida(dto.Plataforma) {
		http.Error(w, "plataforma inválida. Use twitch, youtube, instagram, tiktok ou kick.", http.StatusBadRequest)
		return
	}
	data, err := parseData(dto.Data)
	if err != nil {
		http.Error(w, "data inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}

	l.InfluenciadorID = dto.InfluenciadorID
	l.Titulo = dto.Titulo
	l.Data = data
	l.Horario = dto.Horario
	l.Plataforma = dto.Plataforma
	l.Link = dto.Link
	l.Observacao = dto.Observacao

	if err := h.Repo.Atualizar(l); err != nil {
		http.Error(w, "erro ao atualizar live", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// AtualizarStatus trata PATCH /lives/{id}/status
// Só permite validar uma live agendada como realizada ou não realizada.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if payload.Status != StatusRealizada && payload.Status != StatusNaoRealizada {
		http.Error(w, "status inválido. Use 'realizada' ou 'nao_realizada'.", http.StatusBadRequest)
		return
	}

	l, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "live não encontrada", http.StatusNotFound)
		return
	}
	if l.Status != StatusAgendada {
		http.Error(w, "apenas lives agendadas podem ser validadas", http.StatusConflict)
		return
	}

	if err := h.Repo.AtualizarStatus(uint(id), payload.Status); err != nil {
		http.Error(w, "erro ao atualizar status da live", http.StatusInternalServerError)
		return
	}

	l.Status = payload.Status
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// SalvarResultado trata PUT /lives/{id}/resultado
func (h *Handler) SalvarResultado(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dto ResultadoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if dto.DuracaoHoras < 0 || dto.DuracaoMinutos < 0 || dto.DuracaoMinutos > 59 {
		http.Error(w, "duração inválida: minutos devem estar entre 0 e 59", http.StatusBadRequest)
		return
	}
	if dto.PicoViewers < dto.MediaViewers {
		http.Error(w, "pico de viewers não pode ser menor que a média", http.StatusBadRequest)
		return
	}

	l, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "live não encontrada", http.StatusNotFound)
		return
	}
	if l.Status != StatusRealizada {
		http.Error(w, "resultado só pode ser registrado em lives realizadas", http.StatusConflict)
		return
	}

	resultado, err := h.Repo.SalvarResultado(uint(id), &LiveResultado{
		DuracaoHoras:   dto.DuracaoHoras,
		DuracaoMinutos: dto.DuracaoMinutos,
		MediaViewers:   dto.MediaViewers,
		PicoViewers:    dto.PicoViewers,
		Observacao:     dto.Observacao,
	})
	if err != nil {
		http.Error(w, "erro ao salvar resultado da live", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultado)
}

// Deletar trata DELETE /lives/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "live não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao deletar live", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
