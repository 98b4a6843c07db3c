package live

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AcquisicaoHub/api-livedash/internal/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func novoBancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewTestDB(t, &Live{}, &LiveResultado{})
}

func criarLive(t *testing.T, db *gorm.DB, status string) *Live {
	t.Helper()
	l := &Live{
		InfluenciadorID: 1,
		Titulo:          "Live de teste",
		Data:            time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC),
		Horario:         "20:00",
		Plataforma:      PlataformaTwitch,
		Status:          status,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func requisicaoJSON(t *testing.T, method, url string, id uint, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(id)})
}

func TestValidarLiveAgendada(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusAgendada)

	rec := httptest.NewRecorder()
	h.AtualizarStatus(rec, requisicaoJSON(t, "PATCH", "/lives/1/status", l.ID, map[string]string{
		"status": StatusRealizada,
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	atual, err := h.Repo.BuscarPorID(l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRealizada, atual.Status)
}

func TestValidarLiveJaValidada(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusRealizada)

	rec := httptest.NewRecorder()
	h.AtualizarStatus(rec, requisicaoJSON(t, "PATCH", "/lives/1/status", l.ID, map[string]string{
		"status": StatusNaoRealizada,
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidarStatusDesconhecido(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusAgendada)

	rec := httptest.NewRecorder()
	h.AtualizarStatus(rec, requisicaoJSON(t, "PATCH", "/lives/1/status", l.ID, map[string]string{
		"status": "cancelada",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalvarResultado(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusRealizada)

	rec := httptest.NewRecorder()
	h.SalvarResultado(rec, requisicaoJSON(t, "PUT", "/lives/1/resultado", l.ID, ResultadoDTO{
		DuracaoHoras:   1,
		DuracaoMinutos: 30,
		MediaViewers:   120,
		PicoViewers:    300,
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	atual, err := h.Repo.BuscarPorID(l.ID)
	require.NoError(t, err)
	require.NotNil(t, atual.Resultado)
	assert.Equal(t, 1.5, atual.Resultado.HorasBilhaveis())
}

func TestSalvarResultadoAtualizaExistente(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusRealizada)

	for _, minutos := range []int{15, 45} {
		rec := httptest.NewRecorder()
		h.SalvarResultado(rec, requisicaoJSON(t, "PUT", "/lives/1/resultado", l.ID, ResultadoDTO{
			DuracaoHoras:   2,
			DuracaoMinutos: minutos,
			MediaViewers:   100,
			PicoViewers:    100,
		}))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var total int64
	require.NoError(t, db.Model(&LiveResultado{}).Count(&total).Error)
	assert.EqualValues(t, 1, total, "resultado é 1:1 com a live")

	atual, err := h.Repo.BuscarPorID(l.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, atual.Resultado.DuracaoMinutos)
}

func TestSalvarResultadoRejeitaPicoMenorQueMedia(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusRealizada)

	rec := httptest.NewRecorder()
	h.SalvarResultado(rec, requisicaoJSON(t, "PUT", "/lives/1/resultado", l.ID, ResultadoDTO{
		DuracaoHoras: 1,
		MediaViewers: 300,
		PicoViewers:  120,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var total int64
	require.NoError(t, db.Model(&LiveResultado{}).Count(&total).Error)
	assert.Zero(t, total, "validação rejeita antes de gravar")
}

func TestSalvarResultadoRejeitaMinutosInvalidos(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusRealizada)

	rec := httptest.NewRecorder()
	h.SalvarResultado(rec, requisicaoJSON(t, "PUT", "/lives/1/resultado", l.ID, ResultadoDTO{
		DuracaoHoras:   1,
		DuracaoMinutos: 60,
		MediaViewers:   100,
		PicoViewers:    200,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalvarResultadoExigeLiveRealizada(t *testing.T) {
	db := novoBancoDeTeste(t)
	h := NewHandler(NewRepository(db))
	l := criarLive(t, db, StatusAgendada)

	rec := httptest.NewRecorder()
	h.SalvarResultado(rec, requisicaoJSON(t, "PUT", "/lives/1/resultado", l.ID, ResultadoDTO{
		DuracaoHoras: 1,
		MediaViewers: 100,
		PicoViewers:  200,
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListarComFiltros(t *testing.T) {
	db := novoBancoDeTeste(t)
	repo := NewRepository(db)

	dentro := criarLive(t, db, StatusRealizada)
	fora := &Live{
		InfluenciadorID: 2,
		Titulo:          "Fora da janela",
		Data:            time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Plataforma:      PlataformaYoutube,
		Status:          StatusAgendada,
	}
	require.NoError(t, db.Create(fora).Error)

	lista, err := repo.Listar(Filtro{
		De:  time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Ate: time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, dentro.ID, lista[0].ID)

	porStatus, err := repo.Listar(Filtro{Status: StatusAgendada})
	require.NoError(t, err)
	require.Len(t, porStatus, 1)
	assert.Equal(t, fora.ID, porStatus[0].ID)

	porInflu, err := repo.Listar(Filtro{InfluenciadorID: 2})
	require.NoError(t, err)
	require.Len(t, porInflu, 1)
	assert.Equal(t, fora.ID, porInflu[0].ID)
}
