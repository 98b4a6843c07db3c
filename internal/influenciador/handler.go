package influenciador

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AcquisicaoHub/api-livedash/internal/auth"
	"github.com/AcquisicaoHub/api-livedash/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarInfluenciadorRequest struct {
	Nome          string  `json:"nome"`
	Sobrenome     string  `json:"sobrenome"`
	Email         string  `json:"email"`
	Telefone      string  `json:"telefone"`
	Foto          string  `json:"foto"`
	CacheHora     float64 `json:"cacheHora"`
	Status        string  `json:"status"`
	LinkTwitch    string  `json:"linkTwitch"`
	LinkYoutube   string  `json:"linkYoutube"`
	LinkInstagram string  `json:"linkInstagram"`
	LinkTiktok    string  `json:"linkTiktok"`
	LinkKick      string  `json:"linkKick"`
	Senha         string  `json:"senha"`
	IsAdmin       bool    `json:"isAdmin"`
}

type criarInfluenciadorResponse struct {
	Influenciador
	SenhaTemporaria string `json:"senhaTemporaria,omitempty"`
}

type alterarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"token":                 token,
		"precisaRedefinirSenha": user.PrecisaRedefinirSenha,
	})
}

// Criar cadastra um novo influenciador (rota admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarInfluenciadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	// Sem senha no cadastro, geramos uma temporária e pedimos redefinição
	// no primeiro acesso.
	senha := req.Senha
	senhaTemporaria := ""
	if senha == "" {
		var err error
		senhaTemporaria, err = utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = senhaTemporaria
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	status := req.Status
	if status == "" {
		status = StatusAtivo
	}

	i := Influenciador{
		Nome:          req.Nome,
		Sobrenome:     req.Sobrenome,
		Email:         req.Email,
		Telefone:      req.Telefone,
		Foto:          req.Foto,
		CacheHora:     req.CacheHora,
		Status:        status,
		LinkTwitch:    req.LinkTwitch,
		LinkYoutube:   req.LinkYoutube,
		LinkInstagram: req.LinkInstagram,
		LinkTiktok:    req.LinkTiktok,
		LinkKick:      req.LinkKick,
		Senha:         hash,
		IsAdmin:       req.IsAdmin,

		PrecisaRedefinirSenha: senhaTemporaria != "",
	}

	if err := h.Repository.Salvar(h.DB, &i); err != nil {
		http.Error(w, "erro ao salvar influenciador", http.StatusInternalServerError)
		return
	}

	resp := criarInfluenciadorResponse{Influenciador: i}
	if senhaTemporaria != "" {
		// Exibida uma única vez, para repasse ao influenciador.
		resp.SenhaTemporaria = senhaTemporaria
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Listar retorna o resumo de todos os influenciadores
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar influenciadores", http.StatusInternalServerError)
		return
	}

	resumos := make([]ResumoInfluenciadorDTO, 0, len(lista))
	for _, i := range lista {
		resumos = append(resumos, MontarResumoDTO(i))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumos)
}

// BuscarPorID retorna um influenciador pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "influenciador não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// Atualizar altera dados de um influenciador existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if !isAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados Influenciador
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if dados.Status != "" && dados.Status != StatusAtivo && dados.Status != StatusInativo {
		http.Error(w, "status inválido. Use 'ativo' ou 'inativo'.", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		http.Error(w, "erro ao atualizar influenciador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("influenciador atualizado com sucesso"))
}

// Deletar remove um influenciador (rota admin)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir influenciador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("influenciador excluído com sucesso"))
}

// AlterarSenha troca a senha do próprio usuário
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req alterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "influenciador não encontrado", http.StatusNotFound)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	user.Senha = hash
	user.PrecisaRedefinirSenha = false
	if err := h.Repository.Salvar(h.DB, user); err != nil {
		http.Error(w, "erro ao salvar nova senha", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("senha alterada com sucesso"))
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "influenciador não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}
