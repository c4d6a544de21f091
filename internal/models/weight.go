package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Grams 重量（克，保留 2 位小数）
type Grams struct {
	decimal.Decimal
}

// NewGrams 从浮点数创建重量
func NewGrams(value float64) Grams {
	return Grams{Decimal: decimal.NewFromFloat(value).Round(2)}
}

// IsPositive 重量是否大于 0
func (g Grams) IsPositive() bool {
	return g.Decimal.GreaterThan(decimal.Zero)
}

// MarshalJSON 输出为 JSON 数字，去掉多余的 0
func (g Grams) MarshalJSON() ([]byte, error) {
	return []byte(g.Decimal.Round(2).String()), nil
}

// UnmarshalJSON 解析重量（字符串或数字）
func (g *Grams) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		g.Decimal = d.Round(2)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	g.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (g Grams) Value() (driver.Value, error) {
	return g.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (g *Grams) Scan(value interface{}) error {
	if err := g.Decimal.Scan(value); err != nil {
		return err
	}
	g.Decimal = g.Decimal.Round(2)
	return nil
}

// String 返回重量文本，例如 5.5
func (g Grams) String() string {
	return g.Decimal.Round(2).String()
}
