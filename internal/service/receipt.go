package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"storefront-service/internal/models"
)

// Receipt variants: financial carries full pricing, production only items
// and quantities for the workshop floor
const (
	ReceiptFinancial  = "financial"
	ReceiptProduction = "production"
)

// ErrReceiptVariantUnknown is returned for an unrecognized variant
var ErrReceiptVariantUnknown = errors.New("unknown receipt variant")

var receiptFuncs = template.FuncMap{
	"money": formatCurrency,
	"datetime": func(t interface{ Format(string) string }) string {
		return t.Format("02/01/2006 15:04")
	},
	"mul": func(price float64, qty int) float64 {
		return price * float64(qty)
	},
}

var financialReceiptTmpl = template.Must(template.New("financial").Funcs(receiptFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Pedido {{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
th, td { border-bottom: 1px solid #ccc; padding: 0.4rem; text-align: left; }
.totals td { border: none; padding: 0.2rem 0.4rem; }
.totals .grand { font-weight: bold; }
</style>
</head>
<body>
<h1>Pedido {{.ID}}</h1>
<p>Data: {{datetime .CreatedAt}} &mdash; Status: {{.Status}}</p>
<h2>Cliente</h2>
<p>{{.Customer.Name}}<br>{{.Customer.Email}}<br>{{.Customer.Phone}}</p>
<h2>Entrega</h2>
<p>{{.Address.Street}}, {{.Address.Number}}{{if .Address.Complement}} - {{.Address.Complement}}{{end}}<br>
{{.Address.Neighborhood}} &mdash; {{.Address.City}}/{{.Address.State}}<br>
CEP {{.Address.PostalCode}}</p>
<h2>Itens</h2>
<table>
<tr><th>Produto</th><th>Qtd</th><th>Preço unit.</th><th>Subtotal</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>R$ {{money .UnitPrice}}</td><td>R$ {{money (mul .UnitPrice .Quantity)}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td>Subtotal</td><td>R$ {{money .Subtotal}}</td></tr>
<tr><td>Frete</td><td>R$ {{money .Shipping}}</td></tr>
{{if .CouponCode}}<tr><td>Desconto ({{.CouponCode}})</td><td>-R$ {{money .Discount}}</td></tr>{{end}}
<tr class="grand"><td>Total</td><td>R$ {{money .Total}}</td></tr>
</table>
<p>Pagamento: {{.PaymentMethod}}</p>
</body>
</html>
`))

var productionReceiptTmpl = template.Must(template.New("production").Funcs(receiptFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Produção - Pedido {{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
th, td { border-bottom: 1px solid #ccc; padding: 0.4rem; text-align: left; }
</style>
</head>
<body>
<h1>Ordem de produção &mdash; Pedido {{.ID}}</h1>
<p>Data: {{datetime .CreatedAt}}</p>
<h2>Itens</h2>
<table>
<tr><th>Produto</th><th>Categoria</th><th>Qtd</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.Quantity}}</td></tr>
{{end}}</table>
<h2>Entrega</h2>
<p>{{.Address.Street}}, {{.Address.Number}} &mdash; {{.Address.City}}/{{.Address.State}}</p>
</body>
</html>
`))

// RenderReceipt produces a self-contained printable HTML document for an
// order
func RenderReceipt(order *models.Order, variant string) ([]byte, error) {
	var tmpl *template.Template
	switch variant {
	case ReceiptFinancial:
		tmpl = financialReceiptTmpl
	case ReceiptProduction:
		tmpl = productionReceiptTmpl
	default:
		return nil, ErrReceiptVariantUnknown
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, order); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
