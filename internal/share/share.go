// Package share builds the plain-text rendition of a document used by
// the WhatsApp, email and TXT-download exports. Sections are marked with
// single asterisks, the bold marker WhatsApp understands.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

// Text formats the document for sharing.
func Text(doc *models.Document, f *flavor.Flavor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*== [%s] #%s ==*\n", f.Title, doc.ShortID())
	fmt.Fprintf(&b, "*Emitido em:* %s\n\n", models.FormatDateBR(doc.CreatedAt))

	var fields []string
	for _, field := range f.ShareFields {
		if v := doc.HeaderValue(field.Key); v != "" {
			fields = append(fields, field.Label+": "+v)
		}
	}
	if len(fields) > 0 {
		b.WriteString("*[ DADOS ]*\n")
		for _, line := range fields {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("*[ ITENS ]*\n")
	if len(doc.Items) == 0 {
		b.WriteString("Nenhum item.\n")
	}
	for _, item := range doc.Items {
		b.WriteString(itemLine(doc.Type, item) + "\n")
	}

	if len(f.TotalRows) > 0 {
		b.WriteString("\n")
		for _, row := range f.TotalRows {
			fmt.Fprintf(&b, "*%s: %s*\n", row.Label, models.BRL(doc.Total(row.Key)))
		}
	}

	return b.String()
}

func itemLine(docType string, item models.LineItem) string {
	switch docType {
	case "NOTA_RECEBIVEIS":
		sign := "[+]"
		if item.Kind == models.KindDebit {
			sign = "[-]"
		}
		return fmt.Sprintf("- %s %s: %s", sign, item.Description, models.BRL(item.Subtotal))
	case "REQUISICAO_COMPRA":
		return fmt.Sprintf("- [%s] %s (Qtd: %s)", item.Kind, item.Description, item.Quantity.String())
	case "LISTA_COMPRAS":
		qty := "Qtd: " + item.Quantity.String()
		if item.Weight.IsPositive() {
			qty = "Peso: " + models.FormatBRL(item.Weight) + " Kg"
			if item.Quantity.IsPositive() {
				qty = "Qtd: " + item.Quantity.String() + " / " + qty
			}
		}
		return fmt.Sprintf("- %s (%s): %s", item.Description, qty, models.BRL(item.Subtotal))
	default:
		return fmt.Sprintf("- %s (Qtd: %s): %s", item.Description, item.Quantity.String(), models.BRL(item.Subtotal))
	}
}

// PlainText strips the bold markers for the TXT download and email body.
func PlainText(doc *models.Document, f *flavor.Flavor) string {
	return strings.ReplaceAll(Text(doc, f), "*", "")
}

// Subject is the email subject line.
func Subject(doc *models.Document) string {
	return fmt.Sprintf("Documento %s #%s", doc.Type, doc.ShortID())
}

// WhatsAppURL builds the prefilled-message link.
func WhatsAppURL(text string) string {
	return "https://api.whatsapp.com/send?text=" + escape(text)
}

// MailtoURL builds the prefilled-email link.
func MailtoURL(subject, body string) string {
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

// TxtFilename names the TXT download: <TYPE>_<short-id>_<yyyymmdd>.txt.
func TxtFilename(doc *models.Document, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", doc.Type, doc.ShortID(), now.Format("20060102"))
}

// escape mirrors encodeURIComponent: spaces become %20, not +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
