package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/importer"
	"github.com/Gunvolt24/xmlorders/internal/ports/mocks"
	"github.com/Gunvolt24/xmlorders/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const ivanovXML = `<?xml version="1.0" encoding="utf-8"?>
<orders>
  <order>
    <no>1</no>
    <reg_date>2012.12.19</reg_date>
    <sum>10.00</sum>
    <product><quantity>2</quantity><name>Виджет</name><price>5.00</price></product>
    <user><fio>Иванов</fio><email>ivanov@example.com</email></user>
  </order>
  <order>
    <no>2</no>
    <reg_date>2012.12.20</reg_date>
    <sum>9.00</sum>
    <product><quantity>1</quantity><name>Гаджет</name><price>9.00</price></product>
    <user><fio>Иванов</fio></user>
  </order>
</orders>`

func writeXML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SqlData.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestImport_TwoOrdersOneCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)
	notifier := mocks.NewMockImportNotifier(ctrl)

	var saved *domain.Graph
	gomock.InOrder(
		store.EXPECT().Recreate(gomock.Any()).Return(nil),
		store.EXPECT().FindProductByName(gomock.Any(), "Виджет").Return(nil, nil),
		store.EXPECT().FindCustomerByName(gomock.Any(), "Иванов").Return(nil, nil),
		store.EXPECT().FindProductByName(gomock.Any(), "Гаджет").Return(nil, nil),
		store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, g *domain.Graph) error {
				saved = g
				return nil
			}),
		notifier.EXPECT().ImportCompleted(gomock.Any(), gomock.Any()).Return(nil),
	)

	svc := usecase.NewImportService(store, notifier, noopLogger{})
	path := writeXML(t, ivanovXML)

	summary, err := svc.Import(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, path, summary.File)
	require.Equal(t, 2, summary.Orders)
	require.Equal(t, 1, summary.Customers)
	require.Equal(t, 2, summary.Products)
	require.Equal(t, 2, summary.LineItems)
	require.NotEqual(t, uuid.Nil, summary.RunID)
	require.False(t, summary.DryRun)

	require.NotNil(t, saved)
	require.Len(t, saved.Customers, 1)
	require.Equal(t, "Иванов", saved.Customers[0].Name)
	require.Same(t, saved.Orders[0].Customer, saved.Orders[1].Customer)
	require.Equal(t, 2, saved.Orders[0].Items[0].Quantity())
	require.Equal(t, 1, saved.Orders[1].Items[0].Quantity())
}

func TestImport_PriceOverwrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)

	store.EXPECT().Recreate(gomock.Any()).Return(nil)
	store.EXPECT().FindCustomerByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().FindProductByName(gomock.Any(), "Widget").Return(nil, nil).Times(1)
	store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *domain.Graph) error {
		require.Len(t, g.Products, 1)
		require.True(t, g.Products[0].Price.Equal(decimal.RequireFromString("12.50")))
		return nil
	})

	svc := usecase.NewImportService(store, nil, noopLogger{})
	_, err := svc.Import(context.Background(), writeXML(t, `<orders>
  <order><product><name>Widget</name><price>10.00</price></product><user><fio>A</fio></user></order>
  <order><product><name>Widget</name><price>12.50</price></product><user><fio>A</fio></user></order>
</orders>`))
	require.NoError(t, err)
}

func TestImport_InvalidInputNeverSaves(t *testing.T) {
	cases := map[string]string{
		"missing fio":  `<orders><order><user><email>a@b</email></user></order></orders>`,
		"missing name": `<orders><order><product><price>1</price></product><user><fio>A</fio></user></order></orders>`,
		"bad quantity": `<orders><order><product><name>X</name><quantity>x</quantity></product><user><fio>A</fio></user></order></orders>`,
		"bad price":    `<orders><order><product><name>X</name><price>1,00</price></product><user><fio>A</fio></user></order></orders>`,
		"bad sum":      `<orders><order><sum>ten</sum><user><fio>A</fio></user></order></orders>`,
		"unknown tag":  `<orders><order><foo/><user><fio>A</fio></user></order></orders>`,
		"no user":      `<orders><order><no>1</no></order></orders>`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockOrderStore(ctrl)
			notifier := mocks.NewMockImportNotifier(ctrl)

			store.EXPECT().Recreate(gomock.Any()).Return(nil)
			store.EXPECT().FindCustomerByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			store.EXPECT().FindProductByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).Times(0)
			notifier.EXPECT().ImportCompleted(gomock.Any(), gomock.Any()).Times(0)

			svc := usecase.NewImportService(store, notifier, noopLogger{})
			_, err := svc.Import(context.Background(), writeXML(t, body))
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestImport_UnknownTagIdentified(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)
	store.EXPECT().Recreate(gomock.Any()).Return(nil)

	svc := usecase.NewImportService(store, nil, noopLogger{})
	_, err := svc.Import(context.Background(), writeXML(t, `<orders><order><foo>1</foo></order></orders>`))

	var tagErr *domain.UnrecognizedTagError
	require.True(t, errors.As(err, &tagErr))
	require.Equal(t, "foo", tagErr.Tag)
}

func TestImport_MalformedXMLKeepsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)
	store.EXPECT().Recreate(gomock.Any()).Times(0)

	svc := usecase.NewImportService(store, nil, noopLogger{})
	_, err := svc.Import(context.Background(), writeXML(t, `<orders><order>`))
	require.ErrorIs(t, err, importer.ErrMalformedXML)
}

func TestImport_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)

	svc := usecase.NewImportService(store, nil, noopLogger{})
	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
	require.ErrorIs(t, err, usecase.ErrSourceNotFound)
}

func TestImport_StoreErrors(t *testing.T) {
	boom := errors.New("db down")

	t.Run("recreate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOrderStore(ctrl)
		store.EXPECT().Recreate(gomock.Any()).Return(boom)

		svc := usecase.NewImportService(store, nil, noopLogger{})
		_, err := svc.Import(context.Background(), writeXML(t, ivanovXML))
		require.ErrorIs(t, err, boom)
	})

	t.Run("lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOrderStore(ctrl)
		store.EXPECT().Recreate(gomock.Any()).Return(nil)
		store.EXPECT().FindProductByName(gomock.Any(), "Виджет").Return(nil, boom)
		store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).Times(0)

		svc := usecase.NewImportService(store, nil, noopLogger{})
		_, err := svc.Import(context.Background(), writeXML(t, ivanovXML))
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOrderStore(ctrl)
		notifier := mocks.NewMockImportNotifier(ctrl)
		store.EXPECT().Recreate(gomock.Any()).Return(nil)
		store.EXPECT().FindCustomerByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		store.EXPECT().FindProductByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).Return(boom)
		notifier.EXPECT().ImportCompleted(gomock.Any(), gomock.Any()).Times(0)

		svc := usecase.NewImportService(store, notifier, noopLogger{})
		_, err := svc.Import(context.Background(), writeXML(t, ivanovXML))
		require.ErrorIs(t, err, boom)
	})
}

func TestImport_NotifierFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)
	notifier := mocks.NewMockImportNotifier(ctrl)

	store.EXPECT().Recreate(gomock.Any()).Return(nil)
	store.EXPECT().FindCustomerByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().FindProductByName(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().SaveGraph(gomock.Any(), gomock.Any()).Return(nil)
	notifier.EXPECT().ImportCompleted(gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	svc := usecase.NewImportService(store, notifier, noopLogger{})
	summary, err := svc.Import(context.Background(), writeXML(t, ivanovXML))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Orders)
}

func TestDryRun_DoesNotTouchStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)

	svc := usecase.NewImportService(store, nil, noopLogger{})
	summary, err := svc.DryRun(context.Background(), writeXML(t, ivanovXML))
	require.NoError(t, err)
	require.True(t, summary.DryRun)
	require.Equal(t, 2, summary.Orders)
	require.Equal(t, 1, summary.Customers)
	require.Equal(t, 2, summary.Products)

	_, err = svc.DryRun(context.Background(), writeXML(t, `<orders><order><foo/></order></orders>`))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
