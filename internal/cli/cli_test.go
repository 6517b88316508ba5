package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/xmlorders/internal/cli"
	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/usecase"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "xmlorders "), out)
}

func TestValidate_OK(t *testing.T) {
	path := writeFile(t, `<orders>
  <order><no>1</no><product><name>Виджет</name><quantity>2</quantity></product><user><fio>Иванов</fio></user></order>
  <order><no>2</no><product><name>Гаджет</name></product><user><fio>Иванов</fio></user></order>
</orders>`)

	out, err := run(t, "validate", "--file", path)
	require.NoError(t, err)
	require.Contains(t, out, cli.MsgValid)
	require.Contains(t, out, path)
}

func TestValidate_InvalidTag(t *testing.T) {
	path := writeFile(t, `<orders><order><foo/></order></orders>`)

	_, err := run(t, "validate", "-f", path)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Contains(t, err.Error(), "foo")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "validate", "--file", filepath.Join(t.TempDir(), "absent.xml"))
	require.ErrorIs(t, err, usecase.ErrSourceNotFound)
}

func TestValidate_FileFromEnv(t *testing.T) {
	path := writeFile(t, `<orders><order><user><fio>A</fio></user></order></orders>`)
	t.Setenv("XMLORDERS_IMPORT_FILE", path)

	out, err := run(t, "validate")
	require.NoError(t, err)
	require.Contains(t, out, path)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "export")
	require.Error(t, err)
}
