package utils

import "github.com/shopspring/decimal"

// Round2 arredonda um valor para 2 casas decimais (meio para cima).
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ValorTotal calcula horas × cache com arredondamento de 2 casas.
// As horas já devem chegar arredondadas; o arredondamento aqui é só do produto.
func ValorTotal(horas, cacheHora float64) float64 {
	total := decimal.NewFromFloat(horas).Mul(decimal.NewFromFloat(cacheHora))
	f, _ := total.Round(2).Float64()
	return f
}
