package converter

import (
	"github.com/go-gota/gota/dataframe"

	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
	"github.com/fiscalia/nfe-insights/internal/store"
)

// Column names follow the sanitized form the source exports use
// (lowercase, accents collapsed to underscores).

func DfRowToNfeHeader(df dataframe.DataFrame, rowIdx int, periodKey string) store.NfeHeader {

	return store.NfeHeader{
		PeriodKey:             periodKey,
		AccessKey:             utils.GetStr("chave_de_acesso", rowIdx, &df),
		Model:                 utils.GetStr("modelo", rowIdx, &df),
		Series:                utils.GetStr("s_rie", rowIdx, &df),
		Number:                utils.GetStr("n_mero", rowIdx, &df),
		OperationNature:       utils.GetStr("natureza_da_opera_o", rowIdx, &df),
		IssueDate:             utils.GetStr("data_emiss_o", rowIdx, &df),
		LatestEvent:           utils.GetStr("evento_mais_recente", rowIdx, &df),
		EmitterTaxID:          utils.GetStr("cpf_cnpj_emitente", rowIdx, &df),
		EmitterName:           utils.GetStr("raz_o_social_emitente", rowIdx, &df),
		EmitterRegistrationID: utils.GetStr("inscri_o_estadual_emitente", rowIdx, &df),
		EmitterState:          utils.GetStr("uf_emitente", rowIdx, &df),
		EmitterCity:           utils.GetStr("munic_pio_emitente", rowIdx, &df),
		RecipientTaxID:        utils.GetStr("cnpj_destinat_rio", rowIdx, &df),
		RecipientName:         utils.GetStr("nome_destinat_rio", rowIdx, &df),
		RecipientState:        utils.GetStr("uf_destinat_rio", rowIdx, &df),
		TotalValue:            utils.GetStr("valor_nota_fiscal", rowIdx, &df),
	}
}

func DfRowToNfeItem(df dataframe.DataFrame, rowIdx int, periodKey string) store.NfeItem {

	return store.NfeItem{
		PeriodKey:     periodKey,
		AccessKey:     utils.GetStr("chave_de_acesso", rowIdx, &df),
		ProductNumber: utils.GetStr("n_mero_produto", rowIdx, &df),
		Description:   utils.GetStr("descri_o_do_produto_servi_o", rowIdx, &df),
		NcmCode:       utils.GetStr("c_digo_ncm_sh", rowIdx, &df),
		CfopCode:      utils.GetStr("cfop", rowIdx, &df),
		Quantity:      utils.GetStr("quantidade", rowIdx, &df),
		UnitValue:     utils.GetStr("valor_unit_rio", rowIdx, &df),
		TotalValue:    utils.GetStr("valor_total", rowIdx, &df),
	}
}

func DfRowToPisCofinsRate(df dataframe.DataFrame, rowIdx int) store.PisCofinsRate {
	rate, _ := utils.ParseDecimal(utils.GetStr("aliquota", rowIdx, &df))

	return store.PisCofinsRate{
		Tax:   utils.GetStr("tributo", rowIdx, &df),
		Value: rate,
		Rule:  utils.GetStr("regra", rowIdx, &df),
	}
}

func DfRowToIcmsRate(df dataframe.DataFrame, rowIdx int) store.IcmsRate {
	rate, _ := utils.ParseDecimal(utils.GetStr("aliquota", rowIdx, &df))

	return store.IcmsRate{
		StateName: utils.GetStr("estado", rowIdx, &df),
		StateCode: utils.GetStr("uf", rowIdx, &df),
		Rate:      rate,
	}
}

func DfRowToNcmRate(df dataframe.DataFrame, rowIdx int) store.NcmRate {
	rate, _ := utils.ParseDecimal(utils.GetStr("aliquota", rowIdx, &df))

	return store.NcmRate{
		NcmCode:     utils.GetStr("codigo_ncm", rowIdx, &df),
		Description: utils.GetStr("descricao", rowIdx, &df),
		Rate:        rate,
	}
}
