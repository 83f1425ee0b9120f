package service

import (
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptOrder() *models.Order {
	return &models.Order{
		ID: "o1",
		Customer: models.Customer{
			Name:  "João da Silva",
			Email: "joao@example.com",
			Phone: "(11) 91234-5678",
		},
		Address: models.Address{
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			Number:       "1000",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Kit VanSlide 300", Quantity: 1, UnitPrice: 100, Category: "Automatizadores"},
		},
		Subtotal:      100,
		Shipping:      15.9,
		Total:         115.9,
		PaymentMethod: models.PaymentMethodPix,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Date(2026, time.August, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestRenderFinancialReceipt(t *testing.T) {
	html, err := RenderReceipt(receiptOrder(), ReceiptFinancial)
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "Pedido o1")
	assert.Contains(t, body, "João da Silva")
	assert.Contains(t, body, "Kit VanSlide 300")
	assert.Contains(t, body, "R$ 100,00")
	assert.Contains(t, body, "R$ 15,90")
	assert.Contains(t, body, "R$ 115,90")
	assert.Contains(t, body, "20/08/2026 14:30")
}

func TestRenderFinancialReceiptShowsCouponLine(t *testing.T) {
	order := receiptOrder()
	order.CouponCode = "DEZ"
	order.Discount = 10
	order.Total = 105.9

	html, err := RenderReceipt(order, ReceiptFinancial)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Desconto (DEZ)")
	assert.Contains(t, string(html), "-R$ 10,00")
}

func TestRenderProductionReceiptOmitsPricing(t *testing.T) {
	html, err := RenderReceipt(receiptOrder(), ReceiptProduction)
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "Ordem de produção")
	assert.Contains(t, body, "Kit VanSlide 300")
	assert.Contains(t, body, "Automatizadores")
	assert.NotContains(t, body, "R$")
	assert.NotContains(t, body, "115,90")
	assert.NotContains(t, body, "joao@example.com")
}

func TestRenderReceiptUnknownVariant(t *testing.T) {
	_, err := RenderReceipt(receiptOrder(), "fiscal")
	assert.ErrorIs(t, err, ErrReceiptVariantUnknown)
}

func TestFormatCurrencyUsesCommaSeparator(t *testing.T) {
	assert.Equal(t, "15,90", formatCurrency(15.9))
	assert.Equal(t, "1299,90", formatCurrency(1299.9))
	assert.Equal(t, "0,00", formatCurrency(0))
}
