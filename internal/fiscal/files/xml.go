package files

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
)

const (
	HeaderRecordTag = "registro_cabecalho"
	ItemRecordTag   = "registro_item"
)

// HeaderColumns is the column set expected from a header export, in the
// sanitized form the converters read.
var HeaderColumns = []string{
	"chave_de_acesso",
	"modelo",
	"s_rie",
	"n_mero",
	"natureza_da_opera_o",
	"data_emiss_o",
	"evento_mais_recente",
	"cpf_cnpj_emitente",
	"raz_o_social_emitente",
	"inscri_o_estadual_emitente",
	"uf_emitente",
	"munic_pio_emitente",
	"cnpj_destinat_rio",
	"nome_destinat_rio",
	"uf_destinat_rio",
	"valor_nota_fiscal",
}

// ItemColumns is the column set expected from an item export.
var ItemColumns = []string{
	"chave_de_acesso",
	"n_mero_produto",
	"descri_o_do_produto_servi_o",
	"c_digo_ncm_sh",
	"cfop",
	"quantidade",
	"valor_unit_rio",
	"valor_total",
}

// ParseXML reads an export where each record is one <recordTag> element
// whose children are column/value pairs, and loads the expected columns
// into a dataframe. Columns missing from a record come out empty.
func ParseXML(r io.Reader, recordTag string, columns []string) (dataframe.DataFrame, error) {
	decoder := xml.NewDecoder(r)

	var rows []map[string]string
	var current map[string]string
	var field string

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to parse xml: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == recordTag {
				current = make(map[string]string, len(columns))
			} else if current != nil {
				field = t.Name.Local
			}
		case xml.CharData:
			if current != nil && field != "" {
				current[field] += string(t)
			}
		case xml.EndElement:
			if t.Name.Local == recordTag {
				rows = append(rows, current)
				current = nil
			}
			field = ""
		}
	}

	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no records found with tag %q", recordTag)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, columns)
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row[col]
		}
		records = append(records, record)
	}

	df := dataframe.LoadRecords(records)
	return df, df.Error()
}

func OpenHeaderXML(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	return ParseXML(file, HeaderRecordTag, HeaderColumns)
}

func OpenItemXML(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	return ParseXML(file, ItemRecordTag, ItemColumns)
}
