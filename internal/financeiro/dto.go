package financeiro

import "time"

// ResumoFinanceiroDTO é uma linha do consolidado: um influenciador,
// agregado sobre todos os ciclos da janela.
type ResumoFinanceiroDTO struct {
	InfluenciadorID uint       `json:"influenciadorId"`
	Nome            string     `json:"nome"`
	Sobrenome       string     `json:"sobrenome"`
	Email           string     `json:"email"`
	StatusGeral     string     `json:"statusGeral"`
	TotalHoras      float64    `json:"totalHoras"`
	TotalPago       float64    `json:"totalPago"`
	ValorPendente   float64    `json:"valorPendente"`
	UltimoPagamento *time.Time `json:"ultimoPagamento"`
	QtdPagamentos   int        `json:"qtdPagamentos"`
}
