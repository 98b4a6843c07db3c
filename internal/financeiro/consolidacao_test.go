package financeiro

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AcquisicaoHub/api-livedash/internal/ciclopagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/influenciador"
	"github.com/AcquisicaoHub/api-livedash/internal/pagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func novoBancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewTestDB(t,
		&influenciador.Influenciador{},
		&ciclopagamento.CicloPagamento{},
		&pagamento.Pagamento{},
	)
}

func criarInfluenciador(t *testing.T, db *gorm.DB, nome, email string) *influenciador.Influenciador {
	t.Helper()
	i := &influenciador.Influenciador{Nome: nome, Email: email, Status: influenciador.StatusAtivo}
	require.NoError(t, db.Create(i).Error)
	return i
}

func criarCiclo(t *testing.T, db *gorm.DB, inicio, fim time.Time) *ciclopagamento.CicloPagamento {
	t.Helper()
	c := &ciclopagamento.CicloPagamento{DataInicio: inicio, DataFim: fim}
	require.NoError(t, db.Create(c).Error)
	return c
}

func criarPagamento(t *testing.T, db *gorm.DB, cicloID, influID uint, horas, total float64, status string, pagoEm *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&pagamento.Pagamento{
		CicloPagamentoID: cicloID,
		InfluenciadorID:  influID,
		HorasRealizadas:  horas,
		CacheHora:        100,
		ValorTotal:       total,
		Status:           status,
		PagoEm:           pagoEm,
	}).Error)
}

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func porID(resumos []ResumoFinanceiroDTO) map[uint]ResumoFinanceiroDTO {
	m := make(map[uint]ResumoFinanceiroDTO, len(resumos))
	for _, r := range resumos {
		m[r.InfluenciadorID] = r
	}
	return m
}

func TestConsolidarUmaLinhaPorInfluenciador(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana", "ana@livedash.com")
	b := criarInfluenciador(t, db, "Bia", "bia@livedash.com")
	c := criarInfluenciador(t, db, "Caio", "caio@livedash.com") // sem pagamentos

	ciclo := criarCiclo(t, db, dia(2026, time.February, 2), dia(2026, time.February, 8))
	pago := dia(2026, time.February, 10)
	criarPagamento(t, db, ciclo.ID, a.ID, 1.5, 150, pagamento.StatusPago, &pago)
	criarPagamento(t, db, ciclo.ID, b.ID, 2, 0, pagamento.StatusPerfilIncompleto, nil)

	resumos, err := s.Consolidar(Filtro{})
	require.NoError(t, err)
	require.Len(t, resumos, 3, "uma linha por influenciador conhecido")

	m := porID(resumos)
	assert.Equal(t, StatusGeralAtivo, m[a.ID].StatusGeral)
	assert.Equal(t, StatusGeralPerfilIncompleto, m[b.ID].StatusGeral)
	assert.Equal(t, StatusGeralInativo, m[c.ID].StatusGeral)
	assert.Zero(t, m[c.ID].QtdPagamentos)
}

func TestConsolidarAgregados(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana", "ana@livedash.com")

	c1 := criarCiclo(t, db, dia(2026, time.February, 2), dia(2026, time.February, 8))
	c2 := criarCiclo(t, db, dia(2026, time.February, 9), dia(2026, time.February, 15))
	c3 := criarCiclo(t, db, dia(2026, time.February, 16), dia(2026, time.February, 22))

	pago1 := dia(2026, time.February, 10)
	pago2 := dia(2026, time.February, 17)
	criarPagamento(t, db, c1.ID, a.ID, 1.5, 150, pagamento.StatusPago, &pago1)
	criarPagamento(t, db, c2.ID, a.ID, 2, 200, pagamento.StatusPago, &pago2)
	criarPagamento(t, db, c3.ID, a.ID, 1, 100, pagamento.StatusAPagar, nil)

	resumos, err := s.Consolidar(Filtro{})
	require.NoError(t, err)
	require.Len(t, resumos, 1)

	r := resumos[0]
	assert.Equal(t, 350.0, r.TotalPago)
	assert.Equal(t, 100.0, r.ValorPendente)
	assert.Equal(t, 4.5, r.TotalHoras)
	assert.Equal(t, 3, r.QtdPagamentos)
	require.NotNil(t, r.UltimoPagamento)
	assert.True(t, r.UltimoPagamento.Equal(pago2))
}

func TestConsolidarExcluiPerfilIncompletoDosAgregados(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana", "ana@livedash.com")

	c1 := criarCiclo(t, db, dia(2026, time.February, 2), dia(2026, time.February, 8))
	c2 := criarCiclo(t, db, dia(2026, time.February, 9), dia(2026, time.February, 15))

	pago := dia(2026, time.February, 10)
	criarPagamento(t, db, c1.ID, a.ID, 1.5, 150, pagamento.StatusPago, &pago)
	// Registro sem cache: valor e horas ficam fora dos agregados
	criarPagamento(t, db, c2.ID, a.ID, 3, 0, pagamento.StatusPerfilIncompleto, nil)

	resumos, err := s.Consolidar(Filtro{})
	require.NoError(t, err)
	require.Len(t, resumos, 1)

	r := resumos[0]
	assert.Equal(t, StatusGeralPerfilIncompleto, r.StatusGeral)
	assert.Equal(t, 150.0, r.TotalPago)
	assert.Equal(t, 1.5, r.TotalHoras)
	assert.Equal(t, 0.0, r.ValorPendente)
}

func TestConsolidarFiltroPorMes(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana", "ana@livedash.com")

	fev := criarCiclo(t, db, dia(2026, time.February, 2), dia(2026, time.February, 8))
	mar := criarCiclo(t, db, dia(2026, time.March, 2), dia(2026, time.March, 8))

	pagoFev := dia(2026, time.February, 10)
	pagoMar := dia(2026, time.March, 10)
	criarPagamento(t, db, fev.ID, a.ID, 1.5, 150, pagamento.StatusPago, &pagoFev)
	criarPagamento(t, db, mar.ID, a.ID, 2, 200, pagamento.StatusPago, &pagoMar)

	resumos, err := s.Consolidar(Filtro{Mes: "2026-02"})
	require.NoError(t, err)
	require.Len(t, resumos, 1)
	assert.Equal(t, 150.0, resumos[0].TotalPago)

	// Sem filtro, o total de todos os ciclos bate com a soma dos meses.
	tudo, err := s.Consolidar(Filtro{})
	require.NoError(t, err)
	require.Len(t, tudo, 1)
	assert.Equal(t, 350.0, tudo[0].TotalPago)
}

func TestConsolidarMesForaDoFormato(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	_, err := s.Consolidar(Filtro{Mes: "02/2026"})
	require.ErrorIs(t, err, ErrMesInvalido)
}

func TestConsolidadoRespondeMesInvalidoCom400(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewServico(db))

	req := httptest.NewRequest(http.MethodGet, "/financeiro/consolidado?mes=2026-2", nil)
	rr := httptest.NewRecorder()
	h.Consolidado(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConsolidarFiltrosDeStatusEBusca(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana Paula", "ana@livedash.com")
	criarInfluenciador(t, db, "Bia", "bia@livedash.com")

	ciclo := criarCiclo(t, db, dia(2026, time.February, 2), dia(2026, time.February, 8))
	pago := dia(2026, time.February, 10)
	criarPagamento(t, db, ciclo.ID, a.ID, 1.5, 150, pagamento.StatusPago, &pago)

	ativos, err := s.Consolidar(Filtro{Status: StatusGeralAtivo})
	require.NoError(t, err)
	require.Len(t, ativos, 1)
	assert.Equal(t, a.ID, ativos[0].InfluenciadorID)

	inativos, err := s.Consolidar(Filtro{Status: StatusGeralInativo})
	require.NoError(t, err)
	require.Len(t, inativos, 1)
	assert.Equal(t, "Bia", inativos[0].Nome)

	busca, err := s.Consolidar(Filtro{Busca: "paula"})
	require.NoError(t, err)
	require.Len(t, busca, 1)
	assert.Equal(t, a.ID, busca[0].InfluenciadorID)

	porEmail, err := s.Consolidar(Filtro{Busca: "BIA@"})
	require.NoError(t, err)
	require.Len(t, porEmail, 1)
	assert.Equal(t, "Bia", porEmail[0].Nome)
}

func TestConsolidarIgnoraContasAdmin(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	criarInfluenciador(t, db, "Ana", "ana@livedash.com")
	admin := &influenciador.Influenciador{
		Nome: "Root", Email: "root@livedash.com", IsAdmin: true,
	}
	require.NoError(t, db.Create(admin).Error)

	resumos, err := s.Consolidar(Filtro{})
	require.NoError(t, err)
	require.Len(t, resumos, 1)
	assert.Equal(t, "Ana", resumos[0].Nome)
}

func TestHistoricoLimitadoAosDozeMaisRecentes(t *testing.T) {
	db := novoBancoDeTeste(t)
	s := NewServico(db)

	a := criarInfluenciador(t, db, "Ana", "ana@livedash.com")

	// 14 ciclos semanais consecutivos, um pagamento em cada
	inicio := dia(2026, time.January, 5)
	for i := 0; i < 14; i++ {
		ini := inicio.AddDate(0, 0, 7*i)
		c := criarCiclo(t, db, ini, ini.AddDate(0, 0, 6))
		criarPagamento(t, db, c.ID, a.ID, 1, float64(100+i), pagamento.StatusEmAnalise, nil)
	}

	historico, err := s.Historico(a.ID)
	require.NoError(t, err)
	require.Len(t, historico, LimiteHistorico)

	// Do mais recente ao mais antigo, anotado com a janela do ciclo
	for i := 1; i < len(historico); i++ {
		assert.True(t, historico[i].CicloInicio.Before(historico[i-1].CicloInicio))
	}
	assert.True(t, historico[0].CicloFim.After(historico[0].CicloInicio))
}
