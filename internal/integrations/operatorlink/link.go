package operatorlink

import (
	"fmt"
	"net/url"
	"strings"
)

const waBaseURL = "https://wa.me/"

// OrderSummary данные заказа для сообщения оператору
type OrderSummary struct {
	OrderReference string
	CustomerName   string
	ContactNumber  string
	Location       string
	Date           string
	Time           string
	PackageLabel   string
	DepositAmount  int64
}

// Builder формирует ссылку wa.me с готовым текстом о новом заказе
// Ссылка только строится, сообщение никуда не отправляется
type Builder struct {
	phone string
}

// NewBuilder создает Builder для номера оператора (только цифры, с кодом страны)
func NewBuilder(phone string) *Builder {
	return &Builder{phone: digitsOnly(phone)}
}

// Link возвращает ссылку https://wa.me/<phone>?text=<сообщение>
func (b *Builder) Link(s OrderSummary) string {
	return waBaseURL + b.phone + "?text=" + encodeComponent(Message(s))
}

// Message текст уведомления о новом заказе
func Message(s OrderSummary) string {
	lines := []string{
		"*Pesanan Baru!*",
		"Nama: " + s.CustomerName,
		"WhatsApp: " + s.ContactNumber,
		"Lokasi: " + s.Location,
		"Tanggal: " + s.Date,
		"Waktu: " + s.Time,
		"Paket: " + s.PackageLabel,
		fmt.Sprintf("DP: Rp%d", s.DepositAmount),
		"Order ID: " + s.OrderReference,
	}
	return strings.Join(lines, "\n")
}

// encodeComponent кодирует пробелы как %20, а не '+'
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
