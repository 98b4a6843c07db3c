package financeiro

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler expõe a visão consolidada do financeiro.
type Handler struct {
	Servico *Servico
}

// NewHandler cria um novo Handler.
func NewHandler(servico *Servico) *Handler {
	return &Handler{Servico: servico}
}

// Consolidado trata GET /financeiro/consolidado?mes=&status=&busca=
func (h *Handler) Consolidado(w http.ResponseWriter, r *http.Request) {
	f := Filtro{
		Mes:    r.URL.Query().Get("mes"),
		Status: r.URL.Query().Get("status"),
		Busca:  r.URL.Query().Get("busca"),
	}

	if f.Status != "" &&
		f.Status != StatusGeralAtivo &&
		f.Status != StatusGeralInativo &&
		f.Status != StatusGeralPerfilIncompleto {
		http.Error(w, "status inválido. Use 'ativo', 'inativo' ou 'perfil_incompleto'.", http.StatusBadRequest)
		return
	}

	resumos, err := h.Servico.Consolidar(f)
	if errors.Is(err, ErrMesInvalido) {
		http.Error(w, "mês inválido (use AAAA-MM)", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "erro ao consolidar financeiro", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumos)
}

// Historico trata GET /financeiro/influenciadores/{id}/historico
func (h *Handler) Historico(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	historico, err := h.Servico.Historico(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar histórico", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(historico)
}
