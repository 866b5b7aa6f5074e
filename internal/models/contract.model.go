package models

// Stored status vocabulary. The cell values are the exact strings the
// previous system wrote; changing them would break every existing row.
const (
	ContractStatusContracted = "契約済み"
	PaymentStatusUnpaid      = "未決済"
	PaymentStatusPaid        = "決済完了"
	DefaultPaymentMethod     = "クレジットカード"
)

// Contract sheet columns, 1-based.
const (
	ContractColTimestamp = iota + 1
	ContractColCompany
	ContractColName
	ContractColEmail
	ContractColReferrer
	ContractColContractStatus
	ContractColProduct
	ContractColPrice
	ContractColPaymentMethod
	ContractColPaymentStatus
	ContractColPaymentCompletedAt
	ContractColPaymentCompletedOn

	ContractSheetWidth = ContractColPaymentCompletedOn
)

// ContractHeader returns the header row the upsert engine writes when the
// contract sheet is empty. Columns 1-11 match the previous system; column 12
// is the date-only payment completion column.
func ContractHeader() []string {
	return []string{
		"タイムスタンプ", "会社名", "顧客氏名", "メールアドレス",
		"ご紹介者氏名", "契約ステータス", "商品名", "金額",
		"支払方法", "支払ステータス", "支払い完了日", "支払い完了日付",
	}
}

// ContractRow is the typed view of one contract sheet row.
type ContractRow struct {
	Timestamp          string
	Company            string
	Name               string
	Email              string
	Referrer           string
	ContractStatus     string
	Product            string
	Price              string
	PaymentMethod      string
	PaymentStatus      string
	PaymentCompletedAt string
	PaymentCompletedOn string
}

func (r ContractRow) Cells() []string {
	return []string{
		r.Timestamp, r.Company, r.Name, r.Email,
		r.Referrer, r.ContractStatus, r.Product, r.Price,
		r.PaymentMethod, r.PaymentStatus, r.PaymentCompletedAt, r.PaymentCompletedOn,
	}
}

func ContractRowFromCells(cells []string) ContractRow {
	cells = PadCells(cells, ContractSheetWidth)
	return ContractRow{
		Timestamp:          cells[ContractColTimestamp-1],
		Company:            cells[ContractColCompany-1],
		Name:               cells[ContractColName-1],
		Email:              cells[ContractColEmail-1],
		Referrer:           cells[ContractColReferrer-1],
		ContractStatus:     cells[ContractColContractStatus-1],
		Product:            cells[ContractColProduct-1],
		Price:              cells[ContractColPrice-1],
		PaymentMethod:      cells[ContractColPaymentMethod-1],
		PaymentStatus:      cells[ContractColPaymentStatus-1],
		PaymentCompletedAt: cells[ContractColPaymentCompletedAt-1],
		PaymentCompletedOn: cells[ContractColPaymentCompletedOn-1],
	}
}

// PadCells extends cells with empty strings up to width. Rows written by the
// previous system can be narrower than the current layout.
func PadCells(cells []string, width int) []string {
	if len(cells) >= width {
		return cells
	}
	padded := make([]string, width)
	copy(padded, cells)
	return padded
}
