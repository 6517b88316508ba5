//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// XMLProduct — элемент product входного документа. Пустые поля не выводятся.
type XMLProduct struct {
	Quantity string `xml:"quantity,omitempty"`
	Name     string `xml:"name"`
	Price    string `xml:"price,omitempty"`
}

// XMLUser — элемент user.
type XMLUser struct {
	FIO   string `xml:"fio"`
	Email string `xml:"email,omitempty"`
}

// XMLOrder — элемент order.
type XMLOrder struct {
	XMLName  xml.Name     `xml:"order"`
	No       string       `xml:"no,omitempty"`
	RegDate  string       `xml:"reg_date,omitempty"`
	Sum      string       `xml:"sum,omitempty"`
	Products []XMLProduct `xml:"product"`
	User     *XMLUser     `xml:"user,omitempty"`
}

type xmlOrders struct {
	XMLName xml.Name   `xml:"orders"`
	Orders  []XMLOrder `xml:"order"`
}

// Мини-генератор валидного заказа
func MakeOrder(opts ...func(*XMLOrder)) XMLOrder {
	o := XMLOrder{
		No:       "N-" + UniqSuffix(),
		RegDate:  "2012.12.19",
		Sum:      "10.00",
		Products: []XMLProduct{{Quantity: "1", Name: "product-" + UniqSuffix(), Price: "10.00"}},
		User:     &XMLUser{FIO: "customer-" + UniqSuffix(), Email: "user@example.com"},
	}
	for _, f := range opts {
		f(&o)
	}
	return o
}

func WithCustomer(fio string) func(*XMLOrder) {
	return func(o *XMLOrder) { o.User = &XMLUser{FIO: fio} }
}

func WithProduct(name, quantity, price string) func(*XMLOrder) {
	return func(o *XMLOrder) {
		o.Products = append(o.Products, XMLProduct{Quantity: quantity, Name: name, Price: price})
	}
}

func WithOnlyProducts(products ...XMLProduct) func(*XMLOrder) {
	return func(o *XMLOrder) { o.Products = products }
}

// BuildXML — документ с корнем orders.
func BuildXML(orders ...XMLOrder) []byte {
	body, err := xml.MarshalIndent(xmlOrders{Orders: orders}, "", "  ")
	if err != nil {
		panic(err)
	}
	return append([]byte(xml.Header), body...)
}

// WriteXML — кладёт документ во временный каталог теста и возвращает путь.
func WriteXML(t *testing.T, orders ...XMLOrder) string {
	t.Helper()
	return WriteRawXML(t, BuildXML(orders...))
}

// WriteRawXML — то же для произвольного содержимого (битые документы).
func WriteRawXML(t *testing.T, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SqlData.xml")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	return path
}
