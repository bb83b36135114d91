package files

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
)

const headerXMLSample = `<?xml version="1.0" encoding="UTF-8"?>
<dados>
  <registro_cabecalho>
    <chave_de_acesso>key-1</chave_de_acesso>
    <n_mero>100</n_mero>
    <uf_emitente>SP</uf_emitente>
    <valor_nota_fiscal>1234,56</valor_nota_fiscal>
  </registro_cabecalho>
  <registro_cabecalho>
    <chave_de_acesso>key-2</chave_de_acesso>
    <n_mero>101</n_mero>
    <uf_emitente>RJ</uf_emitente>
    <valor_nota_fiscal>99,90</valor_nota_fiscal>
  </registro_cabecalho>
</dados>`

func TestParseXML(t *testing.T) {
	df, err := ParseXML(strings.NewReader(headerXMLSample), HeaderRecordTag, HeaderColumns)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, "key-1", utils.GetStr("chave_de_acesso", 0, &df))
	assert.Equal(t, "SP", utils.GetStr("uf_emitente", 0, &df))
	assert.Equal(t, "key-2", utils.GetStr("chave_de_acesso", 1, &df))
	assert.Equal(t, "99,90", utils.GetStr("valor_nota_fiscal", 1, &df))

	// Columns absent from the export come out empty, not missing
	assert.Equal(t, "", utils.GetStr("munic_pio_emitente", 0, &df))
}

func TestParseXMLNoRecords(t *testing.T) {
	_, err := ParseXML(strings.NewReader("<dados></dados>"), HeaderRecordTag, HeaderColumns)
	assert.Error(t, err)
}

func TestParseXMLWrongRecordTag(t *testing.T) {
	_, err := ParseXML(strings.NewReader(headerXMLSample), ItemRecordTag, ItemColumns)
	assert.Error(t, err)
}

func TestBuildFilesForPeriod(t *testing.T) {
	headerPath, itemPath := BuildFilesForPeriod("202501", "csv", "tmp/data")

	assert.Equal(t, "tmp/data/202501_NFs_Cabecalho.csv", headerPath)
	assert.Equal(t, "tmp/data/202501_NFs_Itens.csv", itemPath)
}
