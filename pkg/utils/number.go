package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SafeDiv devolve n/d, ou um valor inválido (null) quando d é zero.
func SafeDiv(n, d decimal.Decimal) decimal.NullDecimal {
	if d.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(n.Div(d))
}

// Percent converte uma razão 0..1 em escala percentual.
func Percent(ratio decimal.NullDecimal) decimal.NullDecimal {
	if !ratio.Valid {
		return ratio
	}
	return decimal.NewNullDecimal(ratio.Decimal.Mul(hundred))
}

// ClampInt limita v ao intervalo [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampOrDefault usa def quando v é nil e depois limita ao intervalo.
func ClampOrDefault(v *int, def, min, max int) int {
	if v == nil {
		return ClampInt(def, min, max)
	}
	return ClampInt(*v, min, max)
}

// IntPtr devolve um ponteiro para v.
func IntPtr(v int) *int {
	return &v
}
