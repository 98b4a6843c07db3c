package ciclopagamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de ciclos de pagamento.
type Handler struct {
	Repo   *Repository
	Engine *Engine
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository, engine *Engine) *Handler {
	return &Handler{Repo: repo, Engine: engine}
}

// DTO usado no POST /ciclos
type CriarCicloDTO struct {
	DataInicio string `json:"dataInicio"` // AAAA-MM-DD
	DataFim    string `json:"dataFim"`
}

// Criar trata POST /ciclos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto CriarCicloDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	inicio, err := time.Parse("2006-01-02", dto.DataInicio)
	if err != nil {
		http.Error(w, "dataInicio inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}
	fim, err := time.Parse("2006-01-02", dto.DataFim)
	if err != nil {
		http.Error(w, "dataFim inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}
	if fim.Before(inicio) {
		http.Error(w, "dataFim não pode ser anterior a dataInicio", http.StatusBadRequest)
		return
	}

	c := CicloPagamento{DataInicio: inicio, DataFim: fim}
	if err := h.Repo.Criar(&c); err != nil {
		http.Error(w, "erro ao criar ciclo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Listar trata GET /ciclos (mais recente primeiro)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ciclos, err := h.Repo.ListarTodos()
	if err != nil {
		http.Error(w, "erro ao listar ciclos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ciclos)
}

// BuscarPorID trata GET /ciclos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do ciclo inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "ciclo não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Fechar trata POST /ciclos/{id}/fechar
func (h *Handler) Fechar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do ciclo inválido", http.StatusBadRequest)
		return
	}

	if err := h.Engine.FecharCiclo(uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrCicloNaoEncontrado):
			http.Error(w, "ciclo não encontrado", http.StatusNotFound)
		case errors.Is(err, ErrCicloJaFechado):
			http.Error(w, "ciclo já está fechado", http.StatusConflict)
		default:
			http.Error(w, "erro ao fechar ciclo", http.StatusInternalServerError)
		}
		return
	}

	c, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar ciclo fechado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
