package message

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount the way the game's Brazilian audience reads
// it: "R$ 1.234.567,89".
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return "-R$ " + humanize.FormatFloat("#.###,##", -f)
	}
	return "R$ " + humanize.FormatFloat("#.###,##", f)
}
