package models

const AccountTypeOrdinary = "普通"

// Bank info sheet columns, 1-based.
const (
	BankColPartnerName = iota + 1
	BankColCompany
	BankColBankName
	BankColBankCode
	BankColBranchName
	BankColBranchCode
	BankColAccountType
	BankColAccountNumber
	BankColAccountHolder
	BankColRegisteredAt

	BankSheetWidth = BankColRegisteredAt
)

func BankInfoHeader() []string {
	return []string{
		"正規代理店氏名", "会社名（任意）", "銀行名", "銀行コード",
		"支店名", "支店コード", "口座種別", "口座番号",
		"口座名義（カナ）", "登録日",
	}
}

type BankInfoRow struct {
	PartnerName   string
	Company       string
	BankName      string
	BankCode      string
	BranchName    string
	BranchCode    string
	AccountType   string
	AccountNumber string
	AccountHolder string
	RegisteredAt  string
}

func (r BankInfoRow) Cells() []string {
	return []string{
		r.PartnerName, r.Company, r.BankName, r.BankCode,
		r.BranchName, r.BranchCode, r.AccountType, r.AccountNumber,
		r.AccountHolder, r.RegisteredAt,
	}
}

func BankInfoRowFromCells(cells []string) BankInfoRow {
	cells = PadCells(cells, BankSheetWidth)
	return BankInfoRow{
		PartnerName:   cells[BankColPartnerName-1],
		Company:       cells[BankColCompany-1],
		BankName:      cells[BankColBankName-1],
		BankCode:      cells[BankColBankCode-1],
		BranchName:    cells[BankColBranchName-1],
		BranchCode:    cells[BankColBranchCode-1],
		AccountType:   cells[BankColAccountType-1],
		AccountNumber: cells[BankColAccountNumber-1],
		AccountHolder: cells[BankColAccountHolder-1],
		RegisteredAt:  cells[BankColRegisteredAt-1],
	}
}
