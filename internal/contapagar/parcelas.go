package contapagar

import (
	"math"
	"time"
)

func arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}

// GerarParcelas monta o plano de parcelas de uma conta.
//
// Conta não parcelada vira uma parcela única. Para N parcelas o valor de
// cada uma é total/N arredondado a dois decimais; a última recebe o que
// faltar para fechar o total exato, então sum(parcelas) == total sempre.
// Os vencimentos avançam de periodicidadeDias em periodicidadeDias a
// partir do primeiro vencimento.
func GerarParcelas(valorTotal float64, parcelado bool, numeroParcelas int, periodicidadeDias int, primeiroVencimento time.Time) []ParcelaContaPagar {
	n := numeroParcelas
	if !parcelado || n < 1 {
		n = 1
	}
	if periodicidadeDias < 1 {
		periodicidadeDias = 30
	}

	valorParcela := arredondar(valorTotal / float64(n))

	parcelas := make([]ParcelaContaPagar, 0, n)
	for i := 1; i <= n; i++ {
		valor := valorParcela
		if i == n {
			valor = arredondar(valorTotal - valorParcela*float64(n-1))
		}
		parcelas = append(parcelas, ParcelaContaPagar{
			NumeroParcela:  i,
			ValorParcela:   valor,
			DataVencimento: primeiroVencimento.AddDate(0, 0, (i-1)*periodicidadeDias),
			Status:         ParcelaPendente,
		})
	}
	return parcelas
}
