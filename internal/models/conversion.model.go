package models

const (
	TransferStatusUnremitted       = "未振込"
	PaymentConfirmationUnconfirmed = "未確認"
)

// Conversion report sheet columns, 1-based. The table is an append-only
// ledger; nothing in this system mutates a row after it is written.
const (
	ConversionColSubmittedAt = iota + 1
	ConversionColPartnerName
	ConversionColCustomerName
	ConversionColProduct
	ConversionColSalesAmount
	ConversionColRewardAmount
	ConversionColBankStatus
	ConversionColTransferDate
	ConversionColTransferStatus
	ConversionColPaymentConfirmation

	ConversionSheetWidth = ConversionColPaymentConfirmation
)

func ConversionHeader() []string {
	return []string{
		"申請日時", "正規代理店名", "お客様氏名", "成約商品",
		"販売額（税込）", "報酬額（税込）", "報酬振込先ステータス",
		"振込予定日", "振込ステータス", "顧客支払確認",
	}
}

type ConversionReportRow struct {
	SubmittedAt         string
	PartnerName         string
	CustomerName        string
	Product             string
	SalesAmount         string
	RewardAmount        string
	BankStatus          string
	TransferDate        string
	TransferStatus      string
	PaymentConfirmation string
}

func (r ConversionReportRow) Cells() []string {
	return []string{
		r.SubmittedAt, r.PartnerName, r.CustomerName, r.Product,
		r.SalesAmount, r.RewardAmount, r.BankStatus, r.TransferDate,
		r.TransferStatus, r.PaymentConfirmation,
	}
}

func ConversionReportRowFromCells(cells []string) ConversionReportRow {
	cells = PadCells(cells, ConversionSheetWidth)
	return ConversionReportRow{
		SubmittedAt:         cells[ConversionColSubmittedAt-1],
		PartnerName:         cells[ConversionColPartnerName-1],
		CustomerName:        cells[ConversionColCustomerName-1],
		Product:             cells[ConversionColProduct-1],
		SalesAmount:         cells[ConversionColSalesAmount-1],
		RewardAmount:        cells[ConversionColRewardAmount-1],
		BankStatus:          cells[ConversionColBankStatus-1],
		TransferDate:        cells[ConversionColTransferDate-1],
		TransferStatus:      cells[ConversionColTransferStatus-1],
		PaymentConfirmation: cells[ConversionColPaymentConfirmation-1],
	}
}
