package files

import (
	"fmt"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
)

// LoadCfopTable reads the CFOP reference CSV into a code/description table.
// Whatever the file calls them, the first column is the code and the second
// the description. Keys are integer-normalized so "5.102" and "5102" match.
func LoadCfopTable(path string) (fiscal.CfopTable, error) {
	df, err := OpenFileAndDecode(path)
	if err != nil {
		return nil, err
	}

	names := df.Names()
	if len(names) < 2 {
		return nil, fmt.Errorf("cfop table %s has %d columns, expected at least 2", path, len(names))
	}

	table := make(fiscal.CfopTable, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		code := utils.NormalizeNCM(utils.GetStr(names[0], i, &df))
		if code == 0 {
			continue
		}
		table[utils.FormatInt(code)] = utils.GetStr(names[1], i, &df)
	}
	return table, nil
}
