package models

// Write actions dispatched from the form endpoint.
const (
	ActionContract             = "contract"
	ActionUpdatePaymentStatus  = "updatePaymentStatus"
	ActionContact              = "contact"
	ActionRegisterBankInfo     = "registerBankInfo"
	ActionSubmitConversionRepo = "submitConversionReport"
)

// WriteRequest is the flat envelope every write action arrives in; each
// action reads its own subset of fields and ignores the rest.
type WriteRequest struct {
	Action string `json:"action"`

	// contract / updatePaymentStatus / contact
	Name          string `json:"name"`
	Email         string `json:"email"`
	Company       string `json:"company"`
	Referrer      string `json:"referrer"`
	Product       string `json:"product"`
	Price         string `json:"price"`
	PaymentMethod string `json:"paymentMethod"`

	// contact
	Subject  string `json:"subject"`
	Category string `json:"category"` // legacy alias of Subject
	Message  string `json:"message"`

	// registerBankInfo / submitConversionReport
	PartnerName   string `json:"partnerName"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode"`
	BranchName    string `json:"branchName"`
	BranchCode    string `json:"branchCode"`
	AccountType   string `json:"accountType"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`

	// submitConversionReport
	CustomerName string `json:"customerName"`
	SalesAmount  string `json:"salesAmount"`
	RewardAmount string `json:"rewardAmount"`
	BankStatus   string `json:"bankStatus"`
	TransferDate string `json:"transferDate"`
}

// StatusResponse is the uniform write-side response shape.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func OkResponse(message string) StatusResponse {
	return StatusResponse{Status: "ok", Message: message}
}

func ErrorResponse(message string) StatusResponse {
	return StatusResponse{Status: "error", Message: message}
}

// BankInfoResponse answers the checkBankInfo query. The key and the
// registration timestamp are never echoed back.
type BankInfoResponse struct {
	Registered    bool   `json:"registered"`
	Company       string `json:"company,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	BankCode      string `json:"bankCode,omitempty"`
	BranchName    string `json:"branchName,omitempty"`
	BranchCode    string `json:"branchCode,omitempty"`
	AccountType   string `json:"accountType,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty"`
}
