package pricing

import (
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/shopspring/decimal"
)

var proteinSurcharges = map[model.Protein]decimal.Decimal{
	model.ProteinFriedChicken: decimal.Zero,
	model.ProteinGrilledFish:  decimal.NewFromInt(500),
	model.ProteinBeef:         decimal.NewFromInt(700),
}

var sideSurcharges = map[model.ExtraSide]decimal.Decimal{
	model.SideFriedPlantain:    decimal.NewFromInt(300),
	model.SideColeslaw:         decimal.NewFromInt(200),
	model.SideExtraPepperSauce: decimal.NewFromInt(100),
}

// 未定價的protein/side視為0
// TODO: 新增enum時若忘記補價格會被當成免費, 改為在啟動時檢查價目表是否完整
func ProteinSurcharge(p model.Protein) decimal.Decimal {
	return proteinSurcharges[p]
}

func SideSurcharge(s model.ExtraSide) decimal.Decimal {
	return sideSurcharges[s]
}

func IsKnownProtein(p model.Protein) bool {
	_, ok := proteinSurcharges[p]
	return ok
}

func IsKnownSide(s model.ExtraSide) bool {
	_, ok := sideSurcharges[s]
	return ok
}

// UnitPrice 單價 = 基本價 + protein加價 + 所有sides加價
func UnitPrice(basePrice decimal.Decimal, protein model.Protein, sides []model.ExtraSide) decimal.Decimal {
	price := basePrice.Add(ProteinSurcharge(protein))
	for _, side := range sides {
		price = price.Add(SideSurcharge(side))
	}
	return price
}

// Rates 訂單費率, 由設定檔載入
type Rates struct {
	DeliveryFee    decimal.Decimal
	ServiceFeeRate decimal.Decimal
	TaxRate        decimal.Decimal
}

type OrderTotals struct {
	Subtotal    decimal.Decimal
	ServiceFee  decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// CalculateOrderTotals 稅額以 (subtotal - discount + serviceFee + deliveryFee) 計算, 不做四捨五入
func CalculateOrderTotals(subtotal, discount decimal.Decimal, rates Rates) OrderTotals {
	serviceFee := subtotal.Mul(rates.ServiceFeeRate)
	taxable := subtotal.Sub(discount).Add(serviceFee).Add(rates.DeliveryFee)
	tax := taxable.Mul(rates.TaxRate)
	total := subtotal.Add(serviceFee).Add(rates.DeliveryFee).Add(tax).Sub(discount)

	return OrderTotals{
		Subtotal:    subtotal,
		ServiceFee:  serviceFee,
		DeliveryFee: rates.DeliveryFee,
		Discount:    discount,
		Tax:         tax,
		Total:       total,
	}
}
