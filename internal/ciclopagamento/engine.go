package ciclopagamento

import (
	"errors"
	"time"

	"github.com/AcquisicaoHub/api-livedash/internal/influenciador"
	"github.com/AcquisicaoHub/api-livedash/internal/live"
	"github.com/AcquisicaoHub/api-livedash/internal/pagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrCicloNaoEncontrado = errors.New("ciclo de pagamento não encontrado")
	ErrCicloJaFechado     = errors.New("ciclo de pagamento já está fechado")
)

// Engine executa o fechamento de ciclo: agrega as horas das lives
// realizadas na janela, resolve o cache de cada influenciador e grava um
// Pagamento por influenciador com horas > 0.
type Engine struct {
	DB         *gorm.DB
	Ciclos     *Repository
	Lives      *live.Repository
	Perfis     influenciador.Repository
	Pagamentos *pagamento.Repository
}

// NewEngine monta o engine sobre os repositórios dos domínios envolvidos.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		DB:         db,
		Ciclos:     NewRepository(db),
		Lives:      live.NewRepository(db),
		Perfis:     influenciador.NewRepository(),
		Pagamentos: pagamento.NewRepository(db),
	}
}

// FecharCiclo computa e grava os pagamentos da janela do ciclo e carimba
// fechado_em, tudo em uma única transação. O upsert por (ciclo,
// influenciador) torna a operação idempotente: refechar com os mesmos dados
// produz os mesmos registros. O carimbo é condicional (fechado_em IS NULL);
// se outra sessão fechou primeiro, a transação inteira é desfeita e
// ErrCicloJaFechado é retornado.
func (e *Engine) FecharCiclo(cicloID uint) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		var ciclo CicloPagamento
		if err := tx.First(&ciclo, cicloID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCicloNaoEncontrado
			}
			return err
		}
		if !ciclo.Aberto() {
			return ErrCicloJaFechado
		}

		lives, err := e.Lives.ListarRealizadasNoPeriodo(tx, ciclo.DataInicio, ciclo.DataFim)
		if err != nil {
			return err
		}

		// Soma não arredondada por influenciador. Lives realizadas sem
		// resultado registrado contribuem com zero horas.
		horasPorInfluenciador := make(map[uint]float64)
		for _, l := range lives {
			if l.Resultado == nil {
				continue
			}
			horasPorInfluenciador[l.InfluenciadorID] += l.Resultado.HorasBilhaveis()
		}

		pagRepo := e.Pagamentos.WithDB(tx)
		for influID, horas := range horasPorInfluenciador {
			if horas <= 0 {
				continue
			}

			cache, err := e.Perfis.CacheHoraPorID(tx, influID)
			if err != nil {
				return err
			}

			status := pagamento.StatusEmAnalise
			if cache <= 0 {
				status = pagamento.StatusPerfilIncompleto
			}

			horasArredondadas := utils.Round2(horas)
			p := &pagamento.Pagamento{
				CicloPagamentoID: ciclo.ID,
				InfluenciadorID:  influID,
				HorasRealizadas:  horasArredondadas,
				CacheHora:        cache,
				ValorTotal:       utils.ValorTotal(horasArredondadas, cache),
				Status:           status,
				PagoEm:           nil,
			}
			if err := pagRepo.Upsert(p); err != nil {
				return err
			}
		}

		// O carimbo vem depois de todos os upserts: um ciclo fechado nunca
		// é visto com pagamentos faltando.
		fechou, err := e.Ciclos.FecharCondicional(tx, ciclo.ID, time.Now())
		if err != nil {
			return err
		}
		if !fechou {
			return ErrCicloJaFechado
		}
		return nil
	})
}
