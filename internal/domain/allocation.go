package domain

import "github.com/shopspring/decimal"

// Allocate reparte total entre os pesos em centavos. Cada parte é arredondada
// e o resíduo vai para o maior peso (o primeiro, em caso de empate), então a
// soma das partes é sempre igual a total arredondado. Sem peso positivo a
// divisão é igualitária.
func Allocate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return parts
	}

	total = total.Round(2)
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}

	if !sum.IsPositive() {
		weights = make([]decimal.Decimal, len(parts))
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
		sum = decimal.NewFromInt(int64(len(weights)))
	}

	largest := 0
	allocated := decimal.Zero
	for i, w := range weights {
		parts[i] = total.Mul(w).Div(sum).Round(2)
		allocated = allocated.Add(parts[i])
		if w.GreaterThan(weights[largest]) {
			largest = i
		}
	}

	parts[largest] = parts[largest].Add(total.Sub(allocated))
	return parts
}
