package financeiro

import (
	"errors"
	"strings"
	"time"

	"github.com/AcquisicaoHub/api-livedash/internal/ciclopagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/influenciador"
	"github.com/AcquisicaoHub/api-livedash/internal/pagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/utils"

	"gorm.io/gorm"
)

// Classificação geral do influenciador no consolidado.
const (
	StatusGeralAtivo            = "ativo"
	StatusGeralInativo          = "inativo"
	StatusGeralPerfilIncompleto = "perfil_incompleto"
)

// Quantidade de linhas do drill-down de histórico.
const LimiteHistorico = 12

// ErrMesInvalido indica filtro de mês fora do formato AAAA-MM.
var ErrMesInvalido = errors.New("mês inválido")

// Filtro do consolidado. Campos vazios não filtram.
type Filtro struct {
	Mes    string // AAAA-MM; vazio = todo o período
	Status string // ativo | inativo | perfil_incompleto
	Busca  string // busca livre em nome/e-mail
}

// Servico é a visão de leitura do financeiro: reagrega o histórico de
// pagamentos por influenciador, independente do ciclo aberto. Não tem
// efeitos colaterais.
type Servico struct {
	DB         *gorm.DB
	Ciclos     *ciclopagamento.Repository
	Pagamentos *pagamento.Repository
	Perfis     influenciador.Repository
}

// NewServico monta o serviço sobre os repositórios de leitura.
func NewServico(db *gorm.DB) *Servico {
	return &Servico{
		DB:         db,
		Ciclos:     ciclopagamento.NewRepository(db),
		Pagamentos: pagamento.NewRepository(db),
		Perfis:     influenciador.NewRepository(),
	}
}

// janela resolve o período do filtro: o mês informado ou todo o histórico.
func janela(mes string) (time.Time, time.Time, error) {
	if mes == "" {
		inicio := time.Unix(0, 0).UTC()
		fim := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		return inicio, fim, nil
	}
	inicio, err := time.Parse("2006-01", mes)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMesInvalido
	}
	fim := inicio.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return inicio, fim, nil
}

// Consolidar produz uma linha por influenciador conhecido (inclusive os sem
// pagamento na janela, classificados como inativos) e aplica os filtros de
// status e busca sobre o resultado.
func (s *Servico) Consolidar(f Filtro) ([]ResumoFinanceiroDTO, error) {
	inicio, fim, err := janela(f.Mes)
	if err != nil {
		return nil, err
	}

	cicloIDs, err := s.Ciclos.IDsNoPeriodo(inicio, fim)
	if err != nil {
		return nil, err
	}

	pagamentos, err := s.Pagamentos.ListarPorCiclos(cicloIDs)
	if err != nil {
		return nil, err
	}

	porInfluenciador := make(map[uint][]pagamento.Pagamento)
	for _, p := range pagamentos {
		porInfluenciador[p.InfluenciadorID] = append(porInfluenciador[p.InfluenciadorID], p)
	}

	perfis, err := s.Perfis.ListarTodos(s.DB)
	if err != nil {
		return nil, err
	}

	resumos := make([]ResumoFinanceiroDTO, 0, len(perfis))
	for _, perfil := range perfis {
		// Contas administrativas não são pagas por ciclo.
		if perfil.IsAdmin {
			continue
		}
		resumo := montarResumo(perfil, porInfluenciador[perfil.ID])
		if f.Status != "" && resumo.StatusGeral != f.Status {
			continue
		}
		if !combinaBusca(perfil, f.Busca) {
			continue
		}
		resumos = append(resumos, resumo)
	}
	return resumos, nil
}

func montarResumo(perfil influenciador.Influenciador, pags []pagamento.Pagamento) ResumoFinanceiroDTO {
	var totalPago, totalHoras, pendente float64
	var ultimo *time.Time
	incompleto := false

	for _, p := range pags {
		switch p.Status {
		case pagamento.StatusPago:
			totalPago += p.ValorTotal
			totalHoras += p.HorasRealizadas
			if p.PagoEm != nil && (ultimo == nil || p.PagoEm.After(*ultimo)) {
				t := *p.PagoEm
				ultimo = &t
			}
		case pagamento.StatusEmAnalise, pagamento.StatusAPagar:
			pendente += p.ValorTotal
			totalHoras += p.HorasRealizadas
		case pagamento.StatusPerfilIncompleto:
			// Valor sem significado; horas ficam fora dos agregados.
			incompleto = true
		}
	}

	statusGeral := StatusGeralInativo
	switch {
	case incompleto:
		statusGeral = StatusGeralPerfilIncompleto
	case len(pags) > 0:
		statusGeral = StatusGeralAtivo
	}

	return ResumoFinanceiroDTO{
		InfluenciadorID: perfil.ID,
		Nome:            perfil.Nome,
		Sobrenome:       perfil.Sobrenome,
		Email:           perfil.Email,
		StatusGeral:     statusGeral,
		TotalHoras:      utils.Round2(totalHoras),
		TotalPago:       utils.Round2(totalPago),
		ValorPendente:   utils.Round2(pendente),
		UltimoPagamento: ultimo,
		QtdPagamentos:   len(pags),
	}
}

func combinaBusca(perfil influenciador.Influenciador, busca string) bool {
	if busca == "" {
		return true
	}
	b := strings.ToLower(busca)
	nomeCompleto := strings.ToLower(perfil.Nome + " " + perfil.Sobrenome)
	return strings.Contains(nomeCompleto, b) || strings.Contains(strings.ToLower(perfil.Email), b)
}

// Historico devolve os últimos pagamentos do influenciador em todos os
// ciclos (não limitado à janela do consolidado), anotados com o período de
// cada ciclo.
func (s *Servico) Historico(influenciadorID uint) ([]pagamento.HistoricoPagamento, error) {
	return s.Pagamentos.HistoricoPorInfluenciador(influenciadorID, LimiteHistorico)
}
