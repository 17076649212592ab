package models

type PaymentTerms string

const (
	PaymentTermsNet15             PaymentTerms = "Net15"
	PaymentTermsNet30             PaymentTerms = "Net30"
	PaymentTermsNet45             PaymentTerms = "Net45"
	PaymentTermsNet60             PaymentTerms = "Net60"
	PaymentTermsDueEndOfMonth     PaymentTerms = "DueMonthEnd"
	PaymentTermsDueEndOfNextMonth PaymentTerms = "DueNextMonthEnd"
	PaymentTermsDueOnReceipt      PaymentTerms = "DueOnReceipt"
	PaymentTermsCustom            PaymentTerms = "Custom"
)

type SalesInvoiceStatus string

const (
	SalesInvoiceStatusDraft       SalesInvoiceStatus = "Draft"
	SalesInvoiceStatusConfirmed   SalesInvoiceStatus = "Confirmed"
	SalesInvoiceStatusVoid        SalesInvoiceStatus = "Void"
	SalesInvoiceStatusPartialPaid SalesInvoiceStatus = "Partial Paid"
	SalesInvoiceStatusPaid        SalesInvoiceStatus = "Paid"
	SalesInvoiceStatusWriteOff    SalesInvoiceStatus = "Write Off"
)

type AlertType string

const (
	AlertTypeUpgrade   AlertType = "Upgrade"
	AlertTypeDowngrade AlertType = "Downgrade"
)

type ScoreTier string

const (
	ScoreTierExcellent ScoreTier = "Excellent"
	ScoreTierGood      ScoreTier = "Good"
	ScoreTierAverage   ScoreTier = "Average"
	ScoreTierFair      ScoreTier = "Fair"
	ScoreTierPoor      ScoreTier = "Poor"
)

type ABCCategory string

const (
	ABCCategoryA ABCCategory = "A"
	ABCCategoryB ABCCategory = "B"
	ABCCategoryC ABCCategory = "C"
)

type XYZCategory string

const (
	XYZCategoryX XYZCategory = "X"
	XYZCategoryY XYZCategory = "Y"
	XYZCategoryZ XYZCategory = "Z"
)
