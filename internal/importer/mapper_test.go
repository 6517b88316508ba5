package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/importer"
	"github.com/Gunvolt24/xmlorders/internal/ports/mocks"
)

const twoOrdersXML = `<?xml version="1.0" encoding="utf-8"?>
<orders>
  <order>
    <no>1</no>
    <reg_date>2012.12.19</reg_date>
    <sum>10.00</sum>
    <product>
      <quantity>2</quantity>
      <name>Виджет</name>
      <price>5.00</price>
    </product>
    <user>
      <fio>Иванов</fio>
      <email>ivanov@example.com</email>
    </user>
  </order>
  <order>
    <no>2</no>
    <reg_date>2012.12.20</reg_date>
    <sum>9.00</sum>
    <product>
      <quantity>1</quantity>
      <name>Гаджет</name>
      <price>9.00</price>
    </product>
    <user>
      <fio>Иванов</fio>
    </user>
  </order>
</orders>`

func mapXML(t *testing.T, lookup *mocks.MockEntityLookup, input string) (*domain.Graph, error) {
	t.Helper()

	doc, err := importer.LoadDocument(strings.NewReader(input))
	require.NoError(t, err)

	var r *importer.Resolver
	if lookup != nil {
		r = importer.NewResolver(lookup)
	} else {
		r = importer.NewResolver(nil)
	}
	return importer.NewMapper(r).MapAll(context.Background(), doc.Orders())
}

func TestMapAll_TwoOrdersOneCustomer(t *testing.T) {
	g, err := mapXML(t, nil, twoOrdersXML)
	require.NoError(t, err)

	require.Len(t, g.Orders, 2)
	require.Len(t, g.Customers, 1)
	require.Len(t, g.Products, 2)
	require.Equal(t, 2, g.LineItemsCount())

	first, second := g.Orders[0], g.Orders[1]
	require.Equal(t, "1", first.Number)
	require.Equal(t, time.Date(2012, 12, 19, 0, 0, 0, 0, time.UTC), first.Date)
	require.True(t, first.Cost.Equal(decimal.RequireFromString("10")))

	require.Same(t, first.Customer, second.Customer)
	require.Equal(t, "Иванов", first.Customer.Name)
	require.NotNil(t, first.Customer.Email)
	require.Equal(t, "ivanov@example.com", *first.Customer.Email)

	require.Equal(t, "Виджет", first.Items[0].Product.Name)
	require.Equal(t, 2, first.Items[0].Quantity())
	require.Equal(t, "Гаджет", second.Items[0].Product.Name)
	require.Equal(t, 1, second.Items[0].Quantity())
}

func TestMapAll_PriceLastWriteWins(t *testing.T) {
	g, err := mapXML(t, nil, `<orders>
  <order><product><name>Widget</name><price>10.00</price></product><user><fio>A</fio></user></order>
  <order><product><name>Widget</name><price>12.50</price></product><user><fio>B</fio></user></order>
</orders>`)
	require.NoError(t, err)

	require.Len(t, g.Products, 1)
	require.True(t, g.Products[0].Price.Equal(decimal.RequireFromString("12.50")))
	require.Same(t, g.Orders[0].Items[0].Product, g.Orders[1].Items[0].Product)
}

func TestMapAll_StoredProductPriceUpdated(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := &domain.Product{ID: 7, Name: "Widget", Price: decimal.RequireFromString("10.00")}

	lookup := mocks.NewMockEntityLookup(ctrl)
	lookup.EXPECT().FindProductByName(gomock.Any(), "Widget").Return(stored, nil)
	lookup.EXPECT().FindCustomerByName(gomock.Any(), "A").Return(nil, nil)

	g, err := mapXML(t, lookup, `<orders><order>
  <product><name>Widget</name><price>12.50</price></product>
  <user><fio>A</fio></user>
</order></orders>`)
	require.NoError(t, err)

	require.Same(t, stored, g.Products[0])
	require.Equal(t, int64(7), g.Products[0].ID)
	require.True(t, stored.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestMapAll_QuantityAbsentLeavesDefault(t *testing.T) {
	g, err := mapXML(t, nil, `<orders><order>
  <product><name>X</name></product>
  <product><name>Y</name><quantity>0</quantity></product>
  <user><fio>A</fio></user>
</order></orders>`)
	require.NoError(t, err)

	items := g.Orders[0].Items
	require.Nil(t, items[0].Count)
	require.Equal(t, domain.DefaultLineItemCount, items[0].Quantity())
	require.NotNil(t, items[1].Count)
	require.Equal(t, 0, items[1].Quantity())
}

func TestMapAll_FirstNameAndFioAreKeys(t *testing.T) {
	g, err := mapXML(t, nil, `<orders><order>
  <product><price>1</price><name>First</name><name>Second</name></product>
  <user><fio>Иванов</fio><fio>Петров</fio></user>
</order></orders>`)
	require.NoError(t, err)

	require.Len(t, g.Products, 1)
	require.Equal(t, "First", g.Products[0].Name)
	require.Len(t, g.Customers, 1)
	require.Equal(t, "Иванов", g.Customers[0].Name)
}

func TestMapAll_SecondUserReplacesFirst(t *testing.T) {
	g, err := mapXML(t, nil, `<orders><order>
  <user><fio>A</fio></user>
  <user><fio>B</fio></user>
</order></orders>`)
	require.NoError(t, err)

	require.Equal(t, "B", g.Orders[0].Customer.Name)
	require.Len(t, g.Customers, 2)
}

func TestMapAll_EmptyOrderKeepsDefaults(t *testing.T) {
	g, err := mapXML(t, nil, `<orders><order><user><fio>A</fio></user></order></orders>`)
	require.NoError(t, err)

	o := g.Orders[0]
	require.Empty(t, o.Number)
	require.True(t, o.Date.IsZero())
	require.True(t, o.Cost.IsZero())
	require.Empty(t, o.Items)
}

func TestMapAll_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing fio",
			input: `<orders><order><user><email>x@y</email></user></order></orders>`,
			check: missingField("user", "fio"),
		},
		{
			name:  "missing product name",
			input: `<orders><order><product><price>1</price></product><user><fio>A</fio></user></order></orders>`,
			check: missingField("product", "name"),
		},
		{
			name:  "order without user",
			input: `<orders><order><no>1</no></order></orders>`,
			check: missingField("order", "user"),
		},
		{
			name:  "unknown tag in order",
			input: `<orders><order><foo>1</foo><user><fio>A</fio></user></order></orders>`,
			check: unrecognized("foo"),
		},
		{
			name:  "unknown tag in product",
			input: `<orders><order><product><name>X</name><color>red</color></product></order></orders>`,
			check: unrecognized("color"),
		},
		{
			name:  "unknown tag in user",
			input: `<orders><order><user><fio>A</fio><phone>1</phone></user></order></orders>`,
			check: unrecognized("phone"),
		},
		{
			name:  "stray text in order",
			input: `<orders><order>hello<user><fio>A</fio></user></order></orders>`,
			check: unrecognized("#text"),
		},
		{
			name:  "bad quantity",
			input: `<orders><order><product><name>X</name><quantity>two</quantity></product></order></orders>`,
			check: formatErr("quantity"),
		},
		{
			name:  "quantity out of integer range",
			input: `<orders><order><product><name>W</name><quantity>3000000000</quantity></product></order></orders>`,
			check: formatErr("quantity"),
		},
		{
			name:  "empty fio",
			input: `<orders><order><user><fio></fio></user></order></orders>`,
			check: missingField("user", "fio"),
		},
		{
			name:  "empty product name",
			input: `<orders><order><product><name/><price>1</price></product><user><fio>A</fio></user></order></orders>`,
			check: missingField("product", "name"),
		},
		{
			name:  "bad price",
			input: `<orders><order><product><name>X</name><price>1,5</price></product></order></orders>`,
			check: formatErr("price"),
		},
		{
			name:  "bad sum",
			input: `<orders><order><sum>много</sum></order></orders>`,
			check: formatErr("sum"),
		},
		{
			name:  "bad date",
			input: `<orders><order><reg_date>19.12.2012</reg_date></order></orders>`,
			check: formatErr("reg_date"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := mapXML(t, nil, tc.input)
			require.Nil(t, g)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			tc.check(t, err)
		})
	}
}

// Тэги сопоставляются по локальному имени: префикс пространства имён не учитывается.
func TestMapAll_NamespacePrefixIgnored(t *testing.T) {
	g, err := mapXML(t, nil, `<orders xmlns:x="urn:orders">
  <x:order>
    <x:no>7</x:no>
    <product><x:name>Виджет</x:name></product>
    <x:user><fio>Иванов</fio></x:user>
  </x:order>
</orders>`)
	require.NoError(t, err)
	require.Len(t, g.Orders, 1)
	require.Equal(t, "7", g.Orders[0].Number)
	require.Equal(t, "Иванов", g.Orders[0].Customer.Name)
	require.Equal(t, "Виджет", g.Orders[0].Items[0].Product.Name)
}

func TestMapAll_ErrorNamesOrderPosition(t *testing.T) {
	_, err := mapXML(t, nil, `<orders>
  <order><user><fio>A</fio></user></order>
  <order><bogus/></order>
</orders>`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "order #2")
}

func missingField(element, field string) func(*testing.T, error) {
	return func(t *testing.T, err error) {
		var mf *domain.MissingFieldError
		require.True(t, errors.As(err, &mf), "err=%v", err)
		require.Equal(t, element, mf.Element)
		require.Equal(t, field, mf.Field)
	}
}

func unrecognized(tag string) func(*testing.T, error) {
	return func(t *testing.T, err error) {
		var ue *domain.UnrecognizedTagError
		require.True(t, errors.As(err, &ue), "err=%v", err)
		require.Equal(t, tag, ue.Tag)
	}
}

func formatErr(field string) func(*testing.T, error) {
	return func(t *testing.T, err error) {
		var fe *domain.FormatError
		require.True(t, errors.As(err, &fe), "err=%v", err)
		require.Equal(t, field, fe.Field)
	}
}
