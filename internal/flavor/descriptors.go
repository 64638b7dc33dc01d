package flavor

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"gera-relatorio-backend/internal/models"
)

var shoppingList = &Flavor{
	Slug:             "shopping-list",
	Type:             "LISTA_COMPRAS",
	Title:            "LISTA DE COMPRAS",
	StorageKey:       "shopping_list_data",
	DefaultsKeys:     []string{"shopping_list_details"},
	EmptyListMessage: "Nenhuma lista de compras salva.",
	ValidateItem: func(in ItemInput) error {
		if in.Description == "" {
			return invalid("product is required")
		}
		if in.Quantity.IsNegative() || in.Weight.IsNegative() {
			return invalid("quantity and weight must not be negative")
		}
		if !in.UnitPrice.IsPositive() {
			return invalid("price must be greater than zero")
		}
		if !in.Quantity.IsPositive() && !in.Weight.IsPositive() {
			return invalid("quantity or weight must be greater than zero")
		}
		return nil
	},
	// Price is the base for both the unit quantity and the weight.
	Subtotal: func(in ItemInput) decimal.Decimal {
		return in.Quantity.Mul(in.UnitPrice).Add(in.Weight.Mul(in.UnitPrice))
	},
	Totals: func(items []models.LineItem, _ map[string]string) map[string]decimal.Decimal {
		return map[string]decimal.Decimal{
			models.TotalGrand: models.Round2(sumSubtotals(items)),
		}
	},
	ShareFields: []Field{
		{Key: "listName", Label: "Nome da Lista"},
		{Key: "supermarket", Label: "Supermercado"},
	},
	TotalRows: []Field{
		{Key: models.TotalGrand, Label: "TOTAL GERAL PREVISTO"},
	},
}

var receivablesNote = &Flavor{
	Slug:             "receivables-note",
	Type:             "NOTA_RECEBIVEIS",
	Title:            "NOTA DE RECEBÍVEIS",
	StorageKey:       "receivables_note_data",
	EmptyListMessage: "Nenhuma nota de recebíveis salva.",
	ValidateItem: func(in ItemInput) error {
		if in.Kind != models.KindCredit && in.Kind != models.KindDebit {
			return invalid("entry kind must be CREDIT or DEBIT")
		}
		if in.Description == "" {
			return invalid("description is required")
		}
		if !in.UnitPrice.IsPositive() {
			return invalid("value must be greater than zero")
		}
		return nil
	},
	Subtotal: func(in ItemInput) decimal.Decimal {
		return in.UnitPrice
	},
	Totals: func(items []models.LineItem, _ map[string]string) map[string]decimal.Decimal {
		credit := decimal.Zero
		debit := decimal.Zero
		for _, item := range items {
			switch item.Kind {
			case models.KindCredit:
				credit = credit.Add(item.Subtotal)
			case models.KindDebit:
				debit = debit.Add(item.Subtotal)
			}
		}
		return map[string]decimal.Decimal{
			models.TotalCredit: models.Round2(credit),
			models.TotalDebit:  models.Round2(debit),
			models.TotalLiquid: models.Round2(credit.Sub(debit)),
		}
	},
	ShareFields: []Field{
		{Key: "noteName", Label: "Referência"},
	},
	TotalRows: []Field{
		{Key: models.TotalCredit, Label: "TOTAL DE CRÉDITOS"},
		{Key: models.TotalDebit, Label: "TOTAL DE DÉBITOS"},
		{Key: models.TotalLiquid, Label: "TOTAL LÍQUIDO A RECEBER"},
	},
}

var budget = &Flavor{
	Slug:       "budget",
	Type:       "ORCAMENTO",
	Title:      "ORÇAMENTO",
	StorageKey: "orcamento_generator_data",
	// The budget template explicitly allows saving with zero items.
	AllowEmptyItems:  true,
	EmptyListMessage: "Nenhum orçamento salvo.",
	ValidateItem: func(in ItemInput) error {
		if in.Description == "" {
			return invalid("product or service is required")
		}
		if !in.Quantity.IsPositive() {
			return invalid("quantity must be greater than zero")
		}
		if !in.UnitPrice.IsPositive() {
			return invalid("value must be greater than zero")
		}
		return nil
	},
	Subtotal: func(in ItemInput) decimal.Decimal {
		return in.Quantity.Mul(in.UnitPrice)
	},
	Totals: func(items []models.LineItem, header map[string]string) map[string]decimal.Decimal {
		gross := models.Round2(sumSubtotals(items))
		pct := parseDecimal(header["discountPercent"])
		net := gross.Mul(decimal.NewFromInt(1).Sub(pct.Div(decimal.NewFromInt(100))))
		return map[string]decimal.Decimal{
			models.TotalGross: gross,
			models.TotalNet:   models.Round2(net),
		}
	},
	Finalize: func(header map[string]string) {
		days, _ := strconv.Atoi(header["validityDays"])
		issued := time.Now()
		header["issuedAt"] = issued.Format("2006-01-02")
		header["validUntil"] = issued.AddDate(0, 0, days).Format("2006-01-02")
	},
	ShareFields: []Field{
		{Key: "providerName", Label: "Prestador"},
		{Key: "providerContact", Label: "Contato do Prestador"},
		{Key: "clientName", Label: "Cliente"},
		{Key: "clientContact", Label: "Contato do Cliente"},
		{Key: "paymentMethod", Label: "Forma de Pagamento"},
		{Key: "paymentTermDays", Label: "Prazo de Execução (dias)"},
	},
	TotalRows: []Field{
		{Key: models.TotalGross, Label: "TOTAL GERAL (BRUTO)"},
		{Key: models.TotalNet, Label: "TOTAL COM DESCONTO"},
	},
}

var deliveryReceipt = &Flavor{
	Slug:       "delivery-receipt",
	Type:       "RECIBO_ENTREGA",
	Title:      "RECIBO / NOTA DE ENTREGA",
	StorageKey: "delivery_receipt_data",
	DefaultsKeys: []string{
		"delivery_emitter_details",
		"delivery_client_details",
	},
	EmptyListMessage: "Nenhum recibo/nota de entrega salvo.",
	ValidateItem: func(in ItemInput) error {
		if in.Description == "" {
			return invalid("product is required")
		}
		if !in.Quantity.IsPositive() || !in.Quantity.IsInteger() {
			return invalid("quantity must be an integer greater than zero")
		}
		if in.UnitPrice.IsNegative() {
			return invalid("unit value must not be negative")
		}
		return nil
	},
	Subtotal: func(in ItemInput) decimal.Decimal {
		return in.Quantity.Mul(in.UnitPrice)
	},
	Totals: func(items []models.LineItem, _ map[string]string) map[string]decimal.Decimal {
		return map[string]decimal.Decimal{
			models.TotalGrand: models.Round2(sumSubtotals(items)),
		}
	},
	ShareFields: []Field{
		{Key: "emitterCompany", Label: "Empresa Emissora"},
		{Key: "emitterContact", Label: "Contato do Emissor"},
		{Key: "clientCompany", Label: "Empresa Cliente"},
		{Key: "clientAddress", Label: "Endereço de Entrega"},
	},
	TotalRows: []Field{
		{Key: models.TotalGrand, Label: "TOTAL GERAL DA ENTREGA"},
	},
}

var purchaseRequisition = &Flavor{
	Slug:             "purchase-requisition",
	Type:             "REQUISICAO_COMPRA",
	Title:            "REQUISIÇÃO DE COMPRA",
	StorageKey:       "purchase_requisition_data",
	DefaultsKeys:     []string{"requisition_requester_details"},
	EmptyListMessage: "Nenhuma requisição de compra salva.",
	Sectors: []string{
		"Mercearia",
		"Hortifruti",
		"Frios",
		"Carnes",
		"Produtos de Limpeza",
		"Outros",
	},
	ValidateItem: func(in ItemInput) error {
		if in.Kind == "" {
			return invalid("sector is required")
		}
		if in.Description == "" {
			return invalid("product is required")
		}
		if !in.Quantity.IsPositive() || !in.Quantity.IsInteger() {
			return invalid("quantity must be an integer greater than zero")
		}
		return nil
	},
	Subtotal: func(ItemInput) decimal.Decimal {
		return decimal.Zero
	},
	Totals: func([]models.LineItem, map[string]string) map[string]decimal.Decimal {
		return nil
	},
	ShareFields: []Field{
		{Key: "companyName", Label: "Empresa"},
		{Key: "requesterName", Label: "Requisitante"},
		{Key: "contactInfo", Label: "Contato"},
		{Key: "reason", Label: "Motivo/Obs"},
	},
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
