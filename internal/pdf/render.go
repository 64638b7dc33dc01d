package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

var (
	creditColor = [3]int{0, 150, 0}
	debitColor  = [3]int{200, 0, 0}
)

// Result is a fully rendered document.
type Result struct {
	Bytes    []byte
	Pages    int
	Filename string
}

// Render paints the document according to its type tag.
func Render(doc *models.Document, log zerolog.Logger) (*Result, error) {
	l := New()

	switch doc.Type {
	case "LISTA_COMPRAS":
		renderShoppingList(l, doc)
	case "NOTA_RECEBIVEIS":
		renderReceivablesNote(l, doc)
	case "ORCAMENTO":
		renderBudget(l, doc, log)
	case "RECIBO_ENTREGA":
		renderDeliveryReceipt(l, doc, log)
	case "REQUISICAO_COMPRA":
		renderRequisition(l, doc)
	default:
		return nil, fmt.Errorf("pdf: unknown document type %q", doc.Type)
	}

	var buf bytes.Buffer
	if err := l.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return &Result{
		Bytes:    buf.Bytes(),
		Pages:    l.PageCount(),
		Filename: Filename(doc),
	}, nil
}

// Filename follows the <TYPE>_<short-id>.pdf download convention.
func Filename(doc *models.Document) string {
	return fmt.Sprintf("%s_%s.pdf", doc.Type, doc.ShortID())
}

func renderShoppingList(l *Layout, doc *models.Document) {
	l.SetFont("B", 24)
	l.TextAt(MarginX, l.Y(), "LISTA DE COMPRAS")
	l.Advance(2)

	l.SetFont("", 12)
	if name := doc.HeaderValue("listName"); name != "" {
		l.TextAt(MarginX, l.Y(), "Nome da Lista: "+name)
		l.Advance(1)
	}
	if market := doc.HeaderValue("supermarket"); market != "" {
		l.TextAt(MarginX, l.Y(), "Supermercado: "+market)
		l.Advance(1)
	}
	l.TextAt(MarginX, l.Y(), "Data de Criação: "+models.FormatDateBR(doc.CreatedAt))
	l.Advance(2)

	rows := make([][]Cell, 0, len(doc.Items))
	for _, item := range doc.Items {
		weight := "--"
		if item.Weight.IsPositive() {
			weight = models.FormatBRL(item.Weight)
		}
		rows = append(rows, []Cell{
			{Text: item.Description},
			{Text: item.Quantity.String()},
			{Text: weight},
			{Text: "R$ " + models.FormatBRL(item.UnitPrice)},
			{Text: "R$ " + models.FormatBRL(item.Subtotal)},
		})
	}
	l.RenderTable(Table{
		Columns: []Column{
			{Title: "Produto", X: 1},
			{Title: "Qtd", X: 75, Align: Right},
			{Title: "Peso (Kg/L)", X: 100, Align: Right},
			{Title: "Preço Unit/Kg", X: 125, Align: Right},
			{Title: "TOTAL", X: ContentWidth - 1, Align: Right},
		},
		BreakY:     270,
		Separators: true,
		Outline:    true,
		EmptyText:  "Nenhum item adicionado à lista.",
	}, rows)

	l.Advance(0.5)
	l.Rule()
	l.Advance(1)

	l.SetFont("B", 14)
	l.TextRightAt(140, l.Y(), "TOTAL GERAL PREVISTO:")
	l.TextRightAt(175, l.Y(), models.BRL(doc.Total(models.TotalGrand)))
}

func renderReceivablesNote(l *Layout, doc *models.Document) {
	l.SetFont("B", 24)
	l.TextAt(MarginX, l.Y(), "NOTA DE RECEBÍVEIS")
	l.SetFont("", 10)
	l.TextRightAt(MarginX+ContentWidth, l.Y(), "Nº Documento: #"+doc.ShortID())
	l.Advance(1)

	reference := doc.HeaderValue("noteName")
	if reference == "" {
		reference = "Não Informada"
	}
	l.TextAt(MarginX, l.Y(), "Referência: "+reference)
	l.TextRightAt(MarginX+ContentWidth, l.Y(), "Data: "+models.FormatDateBR(doc.CreatedAt))
	l.Advance(2)

	// Credits are listed before debits for display only; stored order is
	// untouched.
	sorted := make([]models.LineItem, len(doc.Items))
	copy(sorted, doc.Items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Kind == models.KindCredit && sorted[j].Kind == models.KindDebit
	})

	rows := make([][]Cell, 0, len(sorted))
	for i, item := range sorted {
		color := &creditColor
		label := "Crédito (+)"
		if item.Kind == models.KindDebit {
			color = &debitColor
			label = "Débito (-)"
		}
		rows = append(rows, []Cell{
			{Text: fmt.Sprintf("%d", i+1)},
			{Text: label, Color: color},
			{Text: item.Description},
			{Text: models.FormatBRL(item.Subtotal), Color: color},
		})
	}
	l.RenderTable(Table{
		Columns: []Column{
			{Title: "Nº", X: 2},
			{Title: "TIPO", X: 15},
			{Title: "DESCRIÇÃO", X: 45},
			{Title: "VALOR (R$)", X: ContentWidth - 1, Align: Right},
		},
		Separators: true,
		Outline:    true,
		EmptyText:  "Nenhum valor informado.",
	}, rows)
	l.Advance(1)

	labelX := MarginX + 100
	valueX := MarginX + ContentWidth

	l.SetFont("", 12)
	l.TextRightAt(labelX, l.Y(), "TOTAL DE CRÉDITOS:")
	l.SetTextColor(creditColor[0], creditColor[1], creditColor[2])
	l.TextRightAt(valueX, l.Y(), models.BRL(doc.Total(models.TotalCredit)))
	l.Advance(1)

	l.SetTextColor(0, 0, 0)
	l.TextRightAt(labelX, l.Y(), "TOTAL DE DÉBITOS:")
	l.SetTextColor(debitColor[0], debitColor[1], debitColor[2])
	l.TextRightAt(valueX, l.Y(), models.BRL(doc.Total(models.TotalDebit)))
	l.SetY(l.Y() + LineHeight + 3)

	l.LineAt(labelX, l.Y()-1, valueX, l.Y()-1, 0.5)

	l.SetFont("B", 16)
	l.SetTextColor(0, 0, 150)
	l.TextRightAt(labelX, l.Y()+2, "TOTAL LÍQUIDO A RECEBER:")
	l.TextRightAt(valueX, l.Y()+2, models.BRL(doc.Total(models.TotalLiquid)))
	l.SetTextColor(0, 0, 0)
}

func renderBudget(l *Layout, doc *models.Document, log zerolog.Logger) {
	l.SetFont("B", 22)
	l.TextAt(MarginX, l.Y(), "ORÇAMENTO")
	l.SetFont("", 10)
	l.TextAt(MarginX, l.Y()+5, "ID: #"+doc.ShortID())

	if logo := doc.HeaderValue("logo"); strings.HasPrefix(logo, "data:image") {
		if _, err := l.Logo(logo, 175, 10, 20, 20); err != nil {
			log.Warn().Err(err).Str("document", doc.ID).Msg("budget logo skipped")
		}
	}

	l.SetY(35)
	l.Rule()
	l.Advance(1)

	half := MarginX + ContentWidth/2
	y := l.Y()

	l.SetFont("B", 10)
	l.TextAt(MarginX, y, "PRESTADOR (EMISSOR)")
	l.SetFont("", 10)
	l.TextAt(MarginX, y+LineHeight, "Nome: "+doc.HeaderValue("providerName"))
	l.TextAt(MarginX, y+LineHeight*2, "Contato: "+doc.HeaderValue("providerContact"))
	if v := doc.HeaderValue("providerEmail"); v != "" {
		l.TextAt(MarginX, y+LineHeight*3, "Email: "+v)
	}
	if v := doc.HeaderValue("providerDoc"); v != "" {
		l.TextAt(MarginX, y+LineHeight*4, "Doc: "+v)
	}
	if v := doc.HeaderValue("providerCity"); v != "" {
		l.TextAt(MarginX, y+LineHeight*5, "Local: "+v+"/"+doc.HeaderValue("providerState"))
	}

	l.SetFont("B", 10)
	l.TextAt(half, y, "CLIENTE")
	l.SetFont("", 10)
	l.TextAt(half, y+LineHeight, "Nome: "+doc.HeaderValue("clientName"))
	l.TextAt(half, y+LineHeight*2, "Contato: "+doc.HeaderValue("clientContact"))
	if v := doc.HeaderValue("clientEmail"); v != "" {
		l.TextAt(half, y+LineHeight*3, "Email: "+v)
	}
	if v := doc.HeaderValue("clientDoc"); v != "" {
		l.TextAt(half, y+LineHeight*4, "CPF/CNPJ: "+v)
	}
	if v := doc.HeaderValue("clientCity"); v != "" {
		l.TextAt(half, y+LineHeight*5, "Local: "+v+"/"+doc.HeaderValue("clientState"))
	}

	l.Advance(6)
	l.Rule()
	l.Advance(1)

	rows := make([][]Cell, 0, len(doc.Items))
	for _, item := range doc.Items {
		rows = append(rows, []Cell{
			{Text: item.Description},
			{Text: item.Quantity.String()},
			{Text: "R$ " + models.FormatBRL(item.UnitPrice)},
			{Text: "R$ " + models.FormatBRL(item.Subtotal)},
		})
	}
	l.RenderTable(Table{
		Columns: []Column{
			{Title: "Produto/Serviço", X: 1},
			{Title: "Qtd", X: 95, Align: Right},
			{Title: "Valor Unit.", X: 125, Align: Right},
			{Title: "Subtotal", X: 160, Align: Right},
		},
		BreakY:     270,
		BandHeight: 5,
		Fill:       [3]int{240, 240, 240},
		EmptyText:  "Nenhum item adicionado ao orçamento.",
	}, rows)

	l.Advance(0.5)
	l.Rule()
	l.Advance(1)

	l.SetFont("B", 11)
	l.TextRightAt(140, l.Y(), "TOTAL GERAL (BRUTO):")
	l.TextRightAt(175, l.Y(), models.BRL(doc.Total(models.TotalGross)))
	l.Advance(1)

	pct := doc.HeaderValue("discountPercent")
	if pct == "" {
		pct = "0"
	}
	l.TextRightAt(140, l.Y(), fmt.Sprintf("DESCONTO À VISTA (%s%%):", pct))
	l.TextRightAt(175, l.Y(), models.BRL(doc.Total(models.TotalNet)))
	l.Advance(2)

	l.SetFont("", 10)
	l.TextAt(MarginX, l.Y(), "Data de Emissão: "+models.FormatDateBR(doc.HeaderValue("issuedAt")))
	l.TextAt(MarginX, l.Y()+LineHeight, fmt.Sprintf("Data de Validade: %s (%s dias)",
		models.FormatDateBR(doc.HeaderValue("validUntil")), valueOr(doc.HeaderValue("validityDays"), "0")))
	l.TextAt(MarginX, l.Y()+LineHeight*2, "Prazo de Execução: "+valueOr(doc.HeaderValue("paymentTermDays"), "0")+" dias")
	l.TextAt(MarginX, l.Y()+LineHeight*3, "Forma de Pagamento: "+doc.HeaderValue("paymentMethod"))
}

func renderDeliveryReceipt(l *Layout, doc *models.Document, log zerolog.Logger) {
	// The logo shifts the title down by however much of the 50x20 box it
	// actually fills.
	if logo := doc.HeaderValue("emitterLogo"); strings.HasPrefix(logo, "data:image") {
		h, err := l.Logo(logo, MarginX, TopMargin, 50, 20)
		if err != nil {
			log.Warn().Err(err).Str("document", doc.ID).Msg("delivery logo skipped")
		} else {
			l.SetY(TopMargin + h + 5)
		}
	}

	l.SetFont("B", 24)
	l.TextAt(MarginX, l.Y(), "RECIBO / NOTA DE ENTREGA")
	l.SetFont("", 10)
	l.TextRightAt(MarginX+ContentWidth, l.Y(), "Nº Documento: #"+doc.ShortID())
	l.Advance(2)

	boxWidth := ContentWidth/2 - 3
	boxHeight := LineHeight * 5
	y := l.Y()
	clientX := MarginX + ContentWidth/2 + 3

	l.SetFont("B", 10)
	l.FilledBox(MarginX, y-5, boxWidth, 5, [3]int{240, 240, 240})
	l.TextAt(MarginX+1, y-1.5, "EMISSOR / REMETENTE")
	l.SetFont("", 10)
	l.Box(MarginX, y-5, boxWidth, boxHeight+5)
	l.TextAt(MarginX+1, y+5, "Empresa: "+valueOr(doc.HeaderValue("emitterCompany"), "--"))
	l.TextAt(MarginX+1, y+5+LineHeight, "Contato: "+valueOr(doc.HeaderValue("emitterContact"), "--"))
	l.TextAt(MarginX+1, y+5+LineHeight*2, "Endereço: "+valueOr(doc.HeaderValue("emitterAddress"), "--"))

	l.SetFont("B", 10)
	l.FilledBox(clientX, y-5, boxWidth, 5, [3]int{240, 240, 240})
	l.TextAt(clientX+1, y-1.5, "CLIENTE / DESTINATÁRIO")
	l.SetFont("", 10)
	l.Box(clientX, y-5, boxWidth, boxHeight+5)
	l.TextAt(clientX+1, y+5, "Empresa: "+valueOr(doc.HeaderValue("clientCompany"), "--"))
	l.TextAt(clientX+1, y+5+LineHeight, "Contato: "+valueOr(doc.HeaderValue("clientContact"), "--"))
	l.TextAt(clientX+1, y+5+LineHeight*2, "Endereço: "+valueOr(doc.HeaderValue("clientAddress"), "--"))

	l.SetY(y + boxHeight + 10)

	rows := make([][]Cell, 0, len(doc.Items))
	for i, item := range doc.Items {
		rows = append(rows, []Cell{
			{Text: fmt.Sprintf("%d", i+1)},
			{Text: item.Description},
			{Text: item.Quantity.String()},
			{Text: "R$ " + models.FormatBRL(item.UnitPrice)},
			{Text: "R$ " + models.FormatBRL(item.Subtotal)},
		})
	}
	l.RenderTable(Table{
		Columns: []Column{
			{Title: "Nº", X: 2},
			{Title: "PRODUTO / DESCRIÇÃO", X: 10},
			{Title: "QTD", X: 90, Align: Right},
			{Title: "VALOR UNIT.", X: 110, Align: Right},
			{Title: "SUBTOTAL", X: ContentWidth - 1, Align: Right},
		},
		Separators: true,
		Outline:    true,
		EmptyText:  "Nenhum item entregue.",
	}, rows)

	l.Advance(0.5)
	l.Rule()
	l.Advance(1)

	l.SetFont("B", 14)
	l.TextRightAt(140, l.Y(), "TOTAL GERAL DA ENTREGA:")
	l.TextRightAt(175, l.Y(), models.BRL(doc.Total(models.TotalGrand)))
	l.Advance(1)

	// Tear-off receiving slip pinned near the bottom of the page.
	const slipY = 260.0
	const slipHeight = 35.0
	if l.Y()+slipHeight > 280 {
		l.NewPage()
	}

	l.DashedLineAt(MarginX, slipY, MarginX+ContentWidth, slipY)
	l.SetFont("B", 10)
	l.TextAt(MarginX, slipY+5, "CANHOTO DE RECEBIMENTO")
	l.SetFont("", 10)
	l.TextAt(MarginX, slipY+12, "Empresa Destinatária: "+valueOr(doc.HeaderValue("clientCompany"), "--"))
	l.TextAt(MarginX, slipY+18, "Nº Documento: #"+doc.ShortID())
	l.TextAt(MarginX, slipY+24, fmt.Sprintf("Total de Itens: %d", len(doc.Items)))

	signatureY := slipY + 30
	l.LineAt(MarginX+70, signatureY, MarginX+ContentWidth-10, signatureY, 0.2)
	l.SetFont("B", 10)
	l.TextCenterAt(MarginX+115, signatureY+4, "Assinatura e Carimbo do Recebedor")
}

func renderRequisition(l *Layout, doc *models.Document) {
	l.SetFont("B", 24)
	l.TextAt(MarginX, l.Y(), "REQUISIÇÃO DE COMPRA")
	l.SetFont("", 10)
	l.TextRightAt(MarginX+ContentWidth, l.Y(), "ID: #"+doc.ShortID())
	l.Advance(2)

	l.SetFont("B", 10)
	l.TextAt(MarginX, l.Y(), "DADOS DO SOLICITANTE")
	l.LineAt(MarginX, l.Y()+1, MarginX+ContentWidth, l.Y()+1, 0.2)
	l.Advance(1)

	l.SetFont("", 10)
	l.TextAt(MarginX, l.Y(), "Empresa: "+valueOr(doc.HeaderValue("companyName"), "Não Informado"))
	l.TextAt(MarginX+ContentWidth/2, l.Y(), "Requisitante: "+valueOr(doc.HeaderValue("requesterName"), "Não Informado"))
	l.Advance(1)
	l.TextAt(MarginX, l.Y(), "Contato: "+valueOr(doc.HeaderValue("contactInfo"), "Não Informado"))
	l.TextAt(MarginX+ContentWidth/2, l.Y(), "Data: "+models.FormatDateBR(doc.CreatedAt))
	l.Advance(1)
	if reason := doc.HeaderValue("reason"); reason != "" {
		l.TextAt(MarginX, l.Y(), "Motivo/Obs: "+reason)
		l.Advance(1)
	}
	l.Advance(2)

	sectors := []string{"Outros"}
	if f, ok := flavor.ByType(doc.Type); ok {
		sectors = f.Sectors
	}
	grouped := make(map[string][]models.LineItem)
	for _, item := range doc.Items {
		sector := item.Kind
		if !containsString(sectors, sector) {
			sector = sectors[len(sectors)-1]
		}
		grouped[sector] = append(grouped[sector], item)
	}

	if len(doc.Items) == 0 {
		l.SetFont("", 10)
		l.TextAt(MarginX, l.Y(), "Nenhum item adicionado à requisição.")
		l.Advance(2)
	}

	for _, sector := range sectors {
		items := grouped[sector]
		if len(items) == 0 {
			continue
		}

		// Keep the sector title, band and at least a couple of rows
		// together.
		if l.Y()+30 > 280 {
			l.NewPage()
		}

		l.SetFont("B", 14)
		l.TextAt(MarginX, l.Y(), strings.ToUpper(sector))
		l.Advance(1)

		rows := make([][]Cell, 0, len(items))
		for i, item := range items {
			rows = append(rows, []Cell{
				{Text: fmt.Sprintf("%d", i+1)},
				{Text: item.Description},
				{Text: item.Quantity.String()},
			})
		}
		l.RenderTable(Table{
			Columns: []Column{
				{Title: "Nº", X: 2},
				{Title: "PRODUTO / SERVIÇO", X: 20},
				{Title: "QUANTIDADE", X: ContentWidth - 10, Align: Right},
			},
			BreakY:       270,
			Fill:         [3]int{220, 230, 240},
			Separators:   true,
			Outline:      true,
			SectionTitle: strings.ToUpper(sector),
		}, rows)
		l.Advance(1)
	}

	if l.Y()+30 > 280 {
		l.NewPage()
	}
	const signatureY = 250.0
	l.LineAt(MarginX+50, signatureY, MarginX+ContentWidth-50, signatureY, 0.5)
	l.SetFont("B", 10)
	l.TextCenterAt(MarginX+ContentWidth/2, signatureY+4, "Assinatura do Solicitante")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
