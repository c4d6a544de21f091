package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupeeSymbol = "₹"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice 按 en-IN 规则格式化金额：₹ 前缀、印度式分组、无小数
// 例如 285000 -> ₹2,85,000
func FormatPrice(price int64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}
	return sign + rupeeSymbol + inrPrinter.Sprint(number.Decimal(price))
}
