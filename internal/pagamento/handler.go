package pagamento

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Handler gerencia o ciclo de vida de status dos pagamentos.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Aprovar trata PATCH /pagamentos/{id}/aprovar
// Transição permitida: em_analise -> a_pagar.
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pagamento inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "pagamento não encontrado", http.StatusNotFound)
		return
	}
	if p.Status != StatusEmAnalise {
		http.Error(w, "apenas pagamentos em análise podem ser aprovados", http.StatusConflict)
		return
	}

	if err := h.Repo.AtualizarStatus(uint(id), StatusAPagar, time.Time{}); err != nil {
		http.Error(w, "erro ao aprovar pagamento", http.StatusInternalServerError)
		return
	}

	p, err = h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar pagamento atualizado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// MarcarPago trata PATCH /pagamentos/{id}/pagar
// Transição permitida: a_pagar -> pago (carimba pago_em).
func (h *Handler) MarcarPago(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pagamento inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "pagamento não encontrado", http.StatusNotFound)
		return
	}
	if p.Status != StatusAPagar {
		http.Error(w, "apenas pagamentos aprovados podem ser marcados como pagos", http.StatusConflict)
		return
	}

	if err := h.Repo.AtualizarStatus(uint(id), StatusPago, time.Now()); err != nil {
		http.Error(w, "erro ao marcar pagamento como pago", http.StatusInternalServerError)
		return
	}

	p, err = h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar pagamento atualizado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// ListarPorCiclo trata GET /ciclos/{id}/pagamentos
func (h *Handler) ListarPorCiclo(w http.ResponseWriter, r *http.Request) {
	cicloID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do ciclo inválido", http.StatusBadRequest)
		return
	}

	lista, err := h.Repo.ListarPorCiclo(uint(cicloID))
	if err != nil {
		http.Error(w, "erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}
