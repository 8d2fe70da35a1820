package validation

import "strings"

// BusinessInput is a business as submitted from the dashboard.
type BusinessInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Category string `json:"category" validate:"required,max=100"`
	Logo     string `json:"logo" validate:"max=16"`
}

var businessMessages = messages{
	"name.required":     "Business name is required",
	"name.max":          "Business name must be less than 255 characters",
	"category.required": "Category is required",
	"category.max":      "Category must be less than 100 characters",
	"logo.max":          "Logo must be a single emoji",
}

// ValidateBusiness trims and validates a business.
func ValidateBusiness(in BusinessInput) (BusinessInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Logo = strings.TrimSpace(in.Logo)

	if err := check(in, businessMessages); err != nil {
		return BusinessInput{}, err
	}
	return in, nil
}

// File types accepted in a business workspace.
const (
	FileFolder = "folder"
	FilePDF    = "pdf"
	FileXLSX   = "xlsx"
	FileJPG    = "jpg"
	FilePNG    = "png"
	FileDoc    = "doc"
)

// FileInput is a file tree entry. Folders carry no size.
type FileInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Type     string  `json:"type" validate:"oneof=folder pdf xlsx jpg png doc"`
	Size     *int64  `json:"size,omitempty" validate:"omitempty,gte=0"`
	ParentID *string `json:"parent_id,omitempty"`
}

var fileMessages = messages{
	"name.required": "File name is required",
	"name.max":      "File name must be less than 255 characters",
	"type.oneof":    "Unsupported file type",
	"size.gte":      "Size cannot be negative",
}

// ValidateFile trims and validates a file tree entry.
func ValidateFile(in FileInput) (FileInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) == "" {
		in.ParentID = nil
	}
	if in.Type == FileFolder {
		in.Size = nil
	}

	if err := check(in, fileMessages); err != nil {
		return FileInput{}, err
	}
	return in, nil
}

// Transaction types. Sales are income; everything else is an expense.
const (
	TransactionSale     = "sale"
	TransactionPurchase = "purchase"
	TransactionExpense  = "expense"
)

// TransactionInput is a ledger entry. Amount is signed: sales are positive,
// purchases and expenses are usually recorded as negative values.
type TransactionInput struct {
	Type        string  `json:"type" validate:"oneof=sale purchase expense"`
	Description string  `json:"description" validate:"required,max=255"`
	Amount      float64 `json:"amount" validate:"finite,gte=-999999999999,lte=999999999999"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

var transactionMessages = messages{
	"type.oneof":           "Type must be sale, purchase or expense",
	"description.required": "Description is required",
	"description.max":      "Description must be less than 255 characters",
	"amount.finite":        "Amount must be a valid number",
	"amount.gte":           "Amount value is too large",
	"amount.lte":           "Amount value is too large",
	"date.required":        "Date is required",
	"date.datetime":        "Date must use the YYYY-MM-DD format",
}

// ValidateTransaction trims and validates a ledger entry.
func ValidateTransaction(in TransactionInput) (TransactionInput, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)

	if err := check(in, transactionMessages); err != nil {
		return TransactionInput{}, err
	}
	return in, nil
}

// Registration is a sign-up request. Passwords are capped at 72 characters
// since bcrypt hashes at most 72 bytes.
type Registration struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

var registrationMessages = messages{
	"name.required":     "Name is required",
	"name.max":          "Name must be less than 255 characters",
	"email.required":    "Email is required",
	"email.email":       "Email is not valid",
	"email.max":         "Email must be less than 255 characters",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 8 characters",
	"password.max":      "Password must be at most 72 characters",
}

// ValidateRegistration trims name and email and lower-cases the email.
func ValidateRegistration(in Registration) (Registration, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := check(in, registrationMessages); err != nil {
		return Registration{}, err
	}
	return in, nil
}
