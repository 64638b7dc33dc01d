package share

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

func sampleBudget(t *testing.T) (*models.Document, *flavor.Flavor) {
	t.Helper()
	f, ok := flavor.BySlug("budget")
	if !ok {
		t.Fatal("budget flavor not registered")
	}
	doc := &models.Document{
		ID:        "a1b2c3d4-e5f6-7890-abcd-ef0123456789",
		Type:      f.Type,
		CreatedAt: "2026-08-28",
		Header: map[string]string{
			"providerName":  "Oficina do Zé",
			"clientName":    "Maria",
			"paymentMethod": "Pix",
		},
		Items: []models.LineItem{{
			ID:          "i1",
			Description: "Troca de óleo",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("150"),
			Subtotal:    decimal.RequireFromString("150"),
		}},
		Totals: map[string]decimal.Decimal{
			models.TotalGross: decimal.RequireFromString("150"),
			models.TotalNet:   decimal.RequireFromString("135"),
		},
	}
	return doc, f
}

func TestTextSections(t *testing.T) {
	doc, f := sampleBudget(t)
	text := Text(doc, f)

	for _, want := range []string{
		"*== [ORÇAMENTO] #a1b2c3d4 ==*",
		"*Emitido em:* 28/08/2026",
		"*[ DADOS ]*",
		"Prestador: Oficina do Zé",
		"*[ ITENS ]*",
		"- Troca de óleo (Qtd: 1): R$ 150,00",
		"*TOTAL GERAL (BRUTO): R$ 150,00*",
		"*TOTAL COM DESCONTO: R$ 135,00*",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("share text missing %q:\n%s", want, text)
		}
	}
}

func TestPlainTextStripsMarkers(t *testing.T) {
	doc, f := sampleBudget(t)
	plain := PlainText(doc, f)
	if strings.Contains(plain, "*") {
		t.Errorf("plain text still has markers:\n%s", plain)
	}
	if !strings.Contains(plain, "== [ORÇAMENTO] #a1b2c3d4 ==") {
		t.Errorf("plain text lost the heading:\n%s", plain)
	}
}

func TestReceivablesItemLines(t *testing.T) {
	f, _ := flavor.BySlug("receivables-note")
	doc := &models.Document{
		ID:        "deadbeef-0000-0000-0000-000000000000",
		Type:      f.Type,
		CreatedAt: "2026-08-28",
		Items: []models.LineItem{
			{Kind: models.KindCredit, Description: "Venda", Subtotal: decimal.RequireFromString("100")},
			{Kind: models.KindDebit, Description: "Taxa", Subtotal: decimal.RequireFromString("30")},
		},
	}
	text := Text(doc, f)
	if !strings.Contains(text, "- [+] Venda: R$ 100,00") {
		t.Errorf("credit line wrong:\n%s", text)
	}
	if !strings.Contains(text, "- [-] Taxa: R$ 30,00") {
		t.Errorf("debit line wrong:\n%s", text)
	}
}

func TestWhatsAppURLEscaping(t *testing.T) {
	url := WhatsAppURL("linha um\nlinha dois")
	if !strings.HasPrefix(url, "https://api.whatsapp.com/send?text=") {
		t.Errorf("unexpected prefix: %s", url)
	}
	if strings.Contains(url, "+") || strings.Contains(url, "\n") {
		t.Errorf("text not escaped like encodeURIComponent: %s", url)
	}
	if !strings.Contains(url, "%20") {
		t.Errorf("spaces must become %%20: %s", url)
	}
}

func TestMailtoURL(t *testing.T) {
	url := MailtoURL("Documento X", "corpo")
	if !strings.HasPrefix(url, "mailto:?subject=Documento%20X&body=corpo") {
		t.Errorf("unexpected mailto url: %s", url)
	}
}

func TestSubjectAndTxtFilename(t *testing.T) {
	doc, _ := sampleBudget(t)
	if got := Subject(doc); got != "Documento ORCAMENTO #a1b2c3d4" {
		t.Errorf("Subject = %q", got)
	}
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if got := TxtFilename(doc, now); got != "ORCAMENTO_a1b2c3d4_20260828.txt" {
		t.Errorf("TxtFilename = %q", got)
	}
}

func TestEmptyItems(t *testing.T) {
	f, _ := flavor.BySlug("budget")
	doc := &models.Document{ID: "x", Type: f.Type, CreatedAt: "2026-08-28"}
	if !strings.Contains(Text(doc, f), "Nenhum item.") {
		t.Error("empty documents must carry the placeholder line")
	}
}
