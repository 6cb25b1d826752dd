package orders

import (
	"fmt"
	"strings"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

// ComposeMessage renders the plain-text order block sent to the seller over
// WhatsApp. The output is deterministic for a given document: same items,
// same text. Orphan add-ons never appear, matching the total calculation.
func ComposeMessage(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo Pedido - %s*\n\n", doc.Seller.Name)
	fmt.Fprintf(&b, "Data: %s\n", doc.PlacedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Hora: %s\n\n", doc.PlacedAt.Format("15:04"))

	fmt.Fprintf(&b, "*Forma de Entrega:* %s\n\n", doc.DeliveryMethod.Label())

	fmt.Fprintf(&b, "*Cliente:* %s\n", doc.CustomerName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", doc.CustomerPhone)

	if doc.DeliveryMethod == enums.DeliveryMethodDelivery && doc.Address != nil {
		b.WriteString("\n*Endereço de Entrega:*\n")
		writeAddress(&b, *doc.Address)
	}

	b.WriteString("\n*Itens do Pedido:*\n")
	writeItems(&b, doc.Items)

	b.WriteString("\n")
	fmt.Fprintf(&b, "*Subtotal:* %s\n", money.Format(doc.Subtotal()))
	if doc.DeliveryMethod == enums.DeliveryMethodDelivery {
		if doc.DeliveryFee.IsZero() {
			b.WriteString("*Taxa de Entrega:* Grátis\n")
		} else {
			fmt.Fprintf(&b, "*Taxa de Entrega:* %s\n", money.Format(doc.DeliveryFee))
		}
	}
	fmt.Fprintf(&b, "*Total:* %s\n", money.Format(doc.Total()))

	b.WriteString("\n")
	fmt.Fprintf(&b, "*Pagamento:* %s", doc.PaymentMethod.Label())
	if doc.PaymentMethod == enums.PaymentMethodCash && doc.ChangeFor != nil {
		fmt.Fprintf(&b, " (Troco para %s)", money.Format(*doc.ChangeFor))
	}
	b.WriteString("\n")

	return b.String()
}

func writeAddress(b *strings.Builder, addr Address) {
	fmt.Fprintf(b, "%s, %s\n", addr.Street, addr.Number)
	if addr.Complement != "" {
		fmt.Fprintf(b, "Complemento: %s\n", addr.Complement)
	}
	fmt.Fprintf(b, "Bairro: %s\n", addr.Neighborhood)
	fmt.Fprintf(b, "Cidade: %s\n", addr.City)
	if addr.Reference != "" {
		fmt.Fprintf(b, "Referência: %s\n", addr.Reference)
	}
}

func writeItems(b *strings.Builder, items []cart.LineItem) {
	classified := cart.Classify(items)

	position := 0
	for _, main := range classified.MainItems {
		position++
		writeNumberedItem(b, position, main, "")
		for _, addon := range classified.AddonsFor(main.ID) {
			fmt.Fprintf(b, "   + %dx %s: %s\n", addon.Quantity, itemName(addon), money.Format(addon.Total()))
			if addon.Observation != "" {
				fmt.Fprintf(b, "     Obs: %s\n", addon.Observation)
			}
		}
	}
	for _, custom := range classified.CustomItems {
		position++
		writeNumberedItem(b, position, custom, " (Personalizado)")
		for _, step := range custom.Steps {
			fmt.Fprintf(b, "   %s: %s\n", step.Name, stepSelections(step))
		}
	}
}

func writeNumberedItem(b *strings.Builder, position int, item cart.LineItem, suffix string) {
	fmt.Fprintf(b, "%d. %dx %s%s - %s\n", position, item.Quantity, itemName(item), suffix, money.Format(item.Total()))
	if item.Observation != "" {
		fmt.Fprintf(b, "   Obs: %s\n", item.Observation)
	}
}

func itemName(item cart.LineItem) string {
	if item.Variation != nil && item.Variation.Label != "" {
		return fmt.Sprintf("%s (%s)", item.Name, item.Variation.Label)
	}
	return item.Name
}

func stepSelections(step cart.CustomStep) string {
	names := make([]string, 0, len(step.Selections))
	for _, sel := range step.Selections {
		names = append(names, sel.Name)
	}
	return strings.Join(names, ", ")
}
