package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCfopTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CFOP.csv")
	content := "CFOP;DESCRICAO\n5102;Venda de mercadoria adquirida de terceiros\n6108;Venda interestadual\nsem codigo;descartada\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCfopTable(path)
	require.NoError(t, err)

	assert.Equal(t, "Venda de mercadoria adquirida de terceiros", table["5102"])
	assert.Equal(t, "Venda interestadual", table["6108"])
	// Rows whose code does not normalize are dropped
	assert.Len(t, table, 2)
}

func TestLoadCfopTableMissingFile(t *testing.T) {
	_, err := LoadCfopTable(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestOpenFileAndDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "chave_de_acesso;uf_emitente\nkey-1;SP\nkey-2;RJ\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	df, err := OpenFileAndDecode(path)
	require.NoError(t, err)
	assert.Equal(t, 2, df.Nrow())
}

func TestOpenFileAndDecodeEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("chave_de_acesso;uf_emitente\n"), 0o644))

	_, err := OpenFileAndDecode(path)
	assert.Error(t, err)
}
